package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"notemind-backend/internal/middleware"
	"notemind-backend/internal/models"
	"notemind-backend/internal/repository"
	"notemind-backend/internal/services"
)

type NoteHandler struct {
	noteRepo    *repository.NoteRepo
	suggestions suggestionService
	events      *services.EventPublisher
}

func NewNoteHandler(noteRepo *repository.NoteRepo, suggestions suggestionService, events *services.EventPublisher) *NoteHandler {
	return &NoteHandler{
		noteRepo:    noteRepo,
		suggestions: suggestions,
		events:      events,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title == "" || req.Content == "" || req.Category.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "title, content and category are required", r))
		return
	}

	note := &models.Note{
		UserID:     middleware.GetUserID(r.Context()),
		Title:      req.Title,
		Content:    req.Content,
		Images:     req.Images,
		Category:   req.Category,
		Completion: req.Completion,
	}
	if note.Category.Color == "" {
		note.Category.Color = models.ColorForCategory(note.Category.Name)
	}

	if err := note.Validate(); err != nil {
		handleServiceError(w, r, &services.UnprocessableError{Message: err.Error()})
		return
	}

	if err := h.noteRepo.Create(r.Context(), note); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to create note", r))
		return
	}

	h.events.PublishNoteEvent(r.Context(), note.UserID, "note_created", note)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Note created",
		"note":    note,
	})
}

// CreateFromSuggestion runs the classification pipeline and persists
// the assembled note for the authenticated user in one call.
func (h *NoteHandler) CreateFromSuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	draft, err := h.suggestions.Suggest(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	note := &models.Note{
		UserID:     middleware.GetUserID(r.Context()),
		Title:      draft.Title,
		Content:    draft.Content,
		Images:     draft.Images,
		Category:   draft.Category,
		Completion: draft.Completion,
	}

	if err := note.Validate(); err != nil {
		// A normalized draft violating storage constraints points at a
		// normalization bug; surface it distinctly from input errors.
		handleServiceError(w, r, &services.UnprocessableError{Message: err.Error()})
		return
	}

	if err := h.noteRepo.Create(r.Context(), note); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to create note", r))
		return
	}

	h.events.PublishNoteEvent(r.Context(), note.UserID, "note_created", note)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Note created",
		"note":    note,
	})
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	category := r.URL.Query().Get("category")

	var isCompleted *bool
	if v := r.URL.Query().Get("isCompleted"); v != "" {
		b := v == "true"
		isCompleted = &b
	}

	notes, err := h.noteRepo.ListByUser(r.Context(), userID, category, isCompleted)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to fetch notes", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *NoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.noteRepo.Status(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to fetch note status", r))
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid note ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	note, err := h.noteRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOTE_NOT_FOUND", "Note not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to fetch note", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid note ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	note, err := h.noteRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOTE_NOT_FOUND", "Note not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to fetch note", r))
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Images != nil {
		note.Images = *req.Images
	}
	if req.Category != nil {
		note.Category = *req.Category
		if note.Category.Color == "" {
			note.Category.Color = models.ColorForCategory(note.Category.Name)
		}
	}
	if req.Completion != nil {
		note.Completion = models.ApplyCompletionUpdate(note.Completion, *req.Completion, time.Now().UTC())
	}

	// Changing away from a date-bearing category drops the completion
	// record rather than failing validation.
	if !models.RequiresDueDate(note.Category.Name) {
		note.Completion = nil
	}

	if err := note.Validate(); err != nil {
		handleServiceError(w, r, &services.UnprocessableError{Message: err.Error()})
		return
	}

	if err := h.noteRepo.Update(r.Context(), note); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to update note", r))
		return
	}

	h.events.PublishNoteEvent(r.Context(), userID, "note_updated", note)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note updated",
		"note":    note,
	})
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("INVALID_ID", "Invalid note ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.noteRepo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOTE_NOT_FOUND", "Note not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("SERVER_ERROR", "Failed to delete note", r))
		return
	}

	h.events.PublishNoteEvent(r.Context(), userID, "note_deleted", &models.Note{ID: id, UserID: userID})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}
