package stream

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/syntrixbase/notes/internal/feed"
)

// Filter is a compiled CEL predicate over feed events. The expression sees
// `kind` (the event kind string) and `note` (the note fields, empty for deletes).
//
//	kind != 'DELETED' && note.important
//	note.category == 'work' || kind == 'DELETED'
type Filter struct {
	expr string
	prg  cel.Program
}

var filterEnv = mustFilterEnv()

func mustFilterEnv() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("note", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("kind", cel.StringType),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL env: %v", err))
	}
	return env
}

// CompileFilter compiles expr. An empty expression yields a nil Filter, which matches everything.
func CompileFilter(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}

	ast, issues := filterEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}

	prg, err := filterEnv.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program creation error: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Match reports whether ev passes the filter.
func (f *Filter) Match(ev feed.Event) (bool, error) {
	if f == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(map[string]interface{}{
		"kind": string(ev.Kind),
		"note": noteVars(ev),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", f.expr, err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.expr, out.Value())
	}
	return matched, nil
}

func noteVars(ev feed.Event) map[string]interface{} {
	n := ev.Entity
	if n == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"id":        ev.EntityID,
		"title":     n.Title,
		"content":   n.Content,
		"category":  n.Category,
		"important": n.Important,
		"tags":      n.Tags,
		"createdAt": n.CreatedAt,
		"updatedAt": n.UpdatedAt,
	}
}
