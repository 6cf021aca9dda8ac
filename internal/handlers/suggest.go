package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"notemind-backend/internal/models"
)

type suggestionService interface {
	Suggest(ctx context.Context, req models.SuggestRequest) (*models.NoteDraft, error)
}

type SuggestHandler struct {
	suggestions suggestionService
}

func NewSuggestHandler(suggestions suggestionService) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions}
}

// Preview runs the classification pipeline and returns the assembled
// note payload without persisting it.
func (h *SuggestHandler) Preview(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, draft)
}
