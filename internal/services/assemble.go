package services

import (
	"notemind-backend/internal/models"
)

// AssembleNote maps a normalized suggestion onto the note payload shape
// the storage layer persists. Pure and total: any valid
// NormalizedSuggestion yields a valid draft.
func AssembleNote(norm models.NormalizedSuggestion, validatedImages []string, trimmedText string) models.NoteDraft {
	content := trimmedText
	if content == "" {
		content = norm.Summary
	}

	draft := models.NoteDraft{
		Title:   norm.Title,
		Content: content,
		Images:  OptimizeImageURLs(validatedImages),
		Category: models.Category{
			Name:  norm.Category,
			Color: models.ColorForCategory(norm.Category),
		},
	}

	if models.RequiresDueDate(norm.Category) && norm.DueDate != nil {
		draft.Completion = &models.Completion{
			DueDate:     *norm.DueDate,
			IsCompleted: false,
			CompletedAt: nil,
		}
	}

	return draft
}
