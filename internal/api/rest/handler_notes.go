package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/syntrixbase/notes/internal/notes"
)

func (h *Handler) decodeNoteRequest(w http.ResponseWriter, r *http.Request) (notes.NoteRequest, bool) {
	var req notes.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeBadRequest(w, r, "Request body too large")
		} else {
			writeBadRequest(w, r, "Invalid request body")
		}
		return req, false
	}
	return req, true
}

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNoteRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.notes.CreateNote(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleGetAllNotes(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r)(h.notes.GetAllNotes(r.Context()))
}

func (h *Handler) handleGetNote(w http.ResponseWriter, r *http.Request) {
	resp, err := h.notes.GetNoteByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeNoteRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.notes.UpdateNote(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeList returns a sink for a list result so handlers can pass a
// service call straight through.
func (h *Handler) writeList(w http.ResponseWriter, r *http.Request) func([]*notes.NoteResponse, error) {
	return func(resp []*notes.NoteResponse, err error) {
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		if resp == nil {
			resp = []*notes.NoteResponse{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
