package rest

import (
	"net/http"

	"github.com/gorilla/schema"
)

// ImportantQuery is the query string of the important notes listing.
type ImportantQuery struct {
	Important *bool `schema:"important"`
}

// TitleQuery is the query string of the title search.
type TitleQuery struct {
	Title string `schema:"title,required"`
}

// ContentQuery is the query string of the content search.
type ContentQuery struct {
	Content string `schema:"content,required"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeQuery decodes the request query string into dst and answers 400 on failure.
func (h *Handler) decodeQuery(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		h.logger.Warn("Invalid query parameters", "path", r.URL.Path, "error", err)
		writeBadRequest(w, r, "Invalid query parameters: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) handleGetByCategory(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r)(h.notes.GetNotesByCategory(r.Context(), r.PathValue("category")))
}

func (h *Handler) handleGetImportant(w http.ResponseWriter, r *http.Request) {
	var q ImportantQuery
	if !h.decodeQuery(w, r, &q) {
		return
	}
	important := true
	if q.Important != nil {
		important = *q.Important
	}
	h.writeList(w, r)(h.notes.GetImportantNotes(r.Context(), important))
}

func (h *Handler) handleSearchByTitle(w http.ResponseWriter, r *http.Request) {
	var q TitleQuery
	if !h.decodeQuery(w, r, &q) {
		return
	}
	h.writeList(w, r)(h.notes.SearchNotesByTitle(r.Context(), q.Title))
}

func (h *Handler) handleSearchByContent(w http.ResponseWriter, r *http.Request) {
	var q ContentQuery
	if !h.decodeQuery(w, r, &q) {
		return
	}
	h.writeList(w, r)(h.notes.SearchNotesByContent(r.Context(), q.Content))
}

func (h *Handler) handleGetByTag(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r)(h.notes.GetNotesByTag(r.Context(), r.PathValue("tag")))
}

func (h *Handler) handleCountByCategory(w http.ResponseWriter, r *http.Request) {
	count, err := h.notes.CountNotesByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}
