package models

import "time"

// SuggestRequest is the body of the suggestion endpoints: free text
// and/or image URLs to classify into a note.
type SuggestRequest struct {
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// Priority levels the AI may assign. Anything else is coerced to
// PriorityMedium during normalization.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// NormalizedSuggestion is the AI classification after repair: every
// field holds its invariant unconditionally (category in the closed
// set, non-empty title, valid priority, due date present iff the
// category requires one).
type NormalizedSuggestion struct {
	Category      string
	Title         string
	Priority      string
	EstimatedTime *int
	Tags          []string
	Summary       string
	DueDate       *time.Time
}

// NoteDraft is an assembled, not-yet-persisted note payload. The
// preview endpoint returns it directly; the commit endpoint attaches
// an owner and stores it.
type NoteDraft struct {
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Images     []string    `json:"images"`
	Category   Category    `json:"category"`
	Completion *Completion `json:"completion"`
}

// WSMessage is the envelope pushed to connected clients over the
// per-user update channel.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
