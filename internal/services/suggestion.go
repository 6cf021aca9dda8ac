package services

import (
	"context"
	"strings"
	"time"

	"notemind-backend/internal/models"
)

// SuggestionService runs the classification pipeline:
// validate input -> validate images -> build prompt -> call model ->
// normalize -> assemble. Stateless; safe for concurrent use.
type SuggestionService struct {
	model ModelClient
	now   func() time.Time
}

func NewSuggestionService(model ModelClient) *SuggestionService {
	return &SuggestionService{
		model: model,
		now:   time.Now,
	}
}

// Suggest classifies the request into an assembled note draft. The
// only fallible stages are input/image validation and the model call
// itself; a malformed model response degrades to defaults rather than
// failing.
func (s *SuggestionService) Suggest(ctx context.Context, req models.SuggestRequest) (*models.NoteDraft, error) {
	trimmed := strings.TrimSpace(req.Content)

	if trimmed == "" && len(req.Images) == 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"content": "Content or images are required",
		}}
	}

	validatedImages, err := ValidateImages(req.Images)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC()
	prompt := BuildSuggestionPrompt(trimmed, validatedImages, today.Format("2006-01-02"))

	raw, err := s.model.Generate(ctx, prompt.System, prompt.Parts)
	if err != nil {
		return nil, err
	}

	norm := NormalizeSuggestion(raw, trimmed, today)
	draft := AssembleNote(norm, validatedImages, trimmed)
	return &draft, nil
}
