package notes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

// fieldLimits holds the allowed length range per field, used in messages.
var fieldLimits = map[string][2]int{
	"title":   {1, 200},
	"content": {1, 5000},
}

// Validate checks req and returns a *ValidationError listing every rejected field.
func Validate(req *NoteRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationError{Fields: map[string]string{"request": err.Error()}}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "notblank":
		return label + " cannot be blank"
	case "max":
		if limits, ok := fieldLimits[fe.Field()]; ok {
			return fmt.Sprintf("%s must be between %d and %d characters", label, limits[0], limits[1])
		}
		return fmt.Sprintf("%s must not exceed %s characters", label, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", label, fe.Tag())
	}
}
