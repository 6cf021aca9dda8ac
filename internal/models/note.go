package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note categories form a closed set. Anything the AI (or a client)
// sends outside of it is coerced to CategoryOther before persistence.
const (
	CategoryTask     = "Task"
	CategoryIdea     = "Idea"
	CategoryReminder = "Reminder"
	CategoryWork     = "Work"
	CategoryGoal     = "Goal"
	CategoryPersonal = "Personal"
	CategoryOther    = "Other"
)

const DefaultCategoryColor = "#F5C3BD"

// CategoryColors is the process-wide category → display color table.
var CategoryColors = map[string]string{
	CategoryTask:     "#3378FF",
	CategoryIdea:     "#63B6FF",
	CategoryReminder: "#FD7642",
	CategoryWork:     "#00B380",
	CategoryGoal:     "#7448F7",
	CategoryPersonal: "#FF8BB7",
	CategoryOther:    DefaultCategoryColor,
}

// IsValidCategory reports membership in the closed category set.
func IsValidCategory(name string) bool {
	_, ok := CategoryColors[name]
	return ok
}

// ColorForCategory returns the display color for a category, falling
// back to the default color for unrecognized names.
func ColorForCategory(name string) string {
	if c, ok := CategoryColors[name]; ok {
		return c
	}
	return DefaultCategoryColor
}

// RequiresDueDate reports whether a category carries a completion
// sub-record (due date + done state).
func RequiresDueDate(name string) bool {
	return name == CategoryTask || name == CategoryReminder
}

type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Completion is the due-date/done-state sub-record attached only to
// Task and Reminder notes.
type Completion struct {
	DueDate     time.Time  `json:"dueDate"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

type Note struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Images     []string    `json:"images"`
	Category   Category    `json:"category"`
	Completion *Completion `json:"completion"`
	RemindedAt *time.Time  `json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type CreateNoteRequest struct {
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Images     []string    `json:"images"`
	Category   Category    `json:"category"`
	Completion *Completion `json:"completion"`
}

// UpdateNoteRequest is a partial update; nil fields are left untouched.
type UpdateNoteRequest struct {
	Title      *string          `json:"title"`
	Content    *string          `json:"content"`
	Images     *[]string        `json:"images"`
	Category   *Category        `json:"category"`
	Completion *CompletionPatch `json:"completion"`
}

// CompletionPatch is a partial update of a note's completion record.
type CompletionPatch struct {
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
}

// ApplyCompletionUpdate applies a patch to a completion record and
// enforces the completedAt invariant: completedAt is set exactly when
// isCompleted transitions to true and cleared when it transitions to
// false. Total function; never mutates old.
func ApplyCompletionUpdate(old *Completion, patch CompletionPatch, now time.Time) *Completion {
	if old == nil {
		if patch.DueDate == nil {
			return nil
		}
		next := &Completion{DueDate: *patch.DueDate}
		if patch.IsCompleted != nil && *patch.IsCompleted {
			next.IsCompleted = true
			next.CompletedAt = &now
		}
		return next
	}

	next := *old
	if patch.DueDate != nil {
		next.DueDate = *patch.DueDate
	}
	if patch.IsCompleted != nil && *patch.IsCompleted != old.IsCompleted {
		next.IsCompleted = *patch.IsCompleted
		if next.IsCompleted {
			completedAt := now
			next.CompletedAt = &completedAt
		} else {
			next.CompletedAt = nil
		}
	}
	return &next
}

// Validate enforces the storage-level constraints on a note: a known
// category name, a completion record for Task/Reminder and none for
// the rest.
func (n *Note) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if !IsValidCategory(n.Category.Name) {
		return fmt.Errorf("unknown category %q", n.Category.Name)
	}
	if RequiresDueDate(n.Category.Name) {
		if n.Completion == nil || n.Completion.DueDate.IsZero() {
			return fmt.Errorf("%s notes require a completion due date", n.Category.Name)
		}
	} else if n.Completion != nil {
		return fmt.Errorf("%s notes cannot carry a completion record", n.Category.Name)
	}
	return nil
}

// NoteStatus aggregates a user's notes for the status endpoint.
type NoteStatus struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
}
