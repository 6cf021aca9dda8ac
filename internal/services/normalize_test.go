package services

import (
	"testing"
	"time"

	"notemind-backend/internal/models"
)

var normalizeToday = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

func noon(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestNormalizeSuggestionWellFormed(t *testing.T) {
	raw := `{"category":"Task","title":"Buy groceries","priority":"High",
		"estimatedTime":30,"tags":["shopping","food"],"dueDate":"2026-03-12"}`

	got := NormalizeSuggestion(raw, "buy groceries for dinner", normalizeToday)

	if got.Category != models.CategoryTask {
		t.Errorf("category = %q, want Task", got.Category)
	}
	if got.Title != "Buy groceries" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority = %q", got.Priority)
	}
	if got.EstimatedTime == nil || *got.EstimatedTime != 30 {
		t.Errorf("estimatedTime = %v, want 30", got.EstimatedTime)
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.DueDate == nil || !got.DueDate.Equal(noon(2026, 3, 12)) {
		t.Errorf("dueDate = %v, want %v", got.DueDate, noon(2026, 3, 12))
	}
}

func TestNormalizeSuggestionCodeFences(t *testing.T) {
	raw := "```json\n{\"category\":\"Idea\",\"title\":\"App concept\",\"priority\":\"Low\"}\n```"

	got := NormalizeSuggestion(raw, "", normalizeToday)
	if got.Category != models.CategoryIdea {
		t.Errorf("category = %q, want Idea", got.Category)
	}
	if got.Title != "App concept" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestNormalizeSuggestionCommentaryAroundJSON(t *testing.T) {
	raw := `Sure! Here is the categorization you asked for:
{"category":"Reminder","title":"Dentist","priority":"High","dueDate":"2026-03-11"}
Hope that helps!`

	got := NormalizeSuggestion(raw, "", normalizeToday)
	if got.Category != models.CategoryReminder {
		t.Errorf("category = %q, want Reminder", got.Category)
	}
	if got.DueDate == nil || !got.DueDate.Equal(noon(2026, 3, 11)) {
		t.Errorf("dueDate = %v", got.DueDate)
	}
}

func TestNormalizeSuggestionGarbageInput(t *testing.T) {
	// Truncated pseudo-JSON with unquoted keys never parses; every
	// field falls back to its default.
	raw := `Sure! Here's the JSON: {category: Task`

	got := NormalizeSuggestion(raw, "call the plumber about the leak tomorrow", normalizeToday)

	if got.Category != models.CategoryOther {
		t.Errorf("category = %q, want Other", got.Category)
	}
	if got.Title != "call the plumber about the lea" {
		t.Errorf("title = %q, want 30-rune seed prefix", got.Title)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want Medium", got.Priority)
	}
	if got.DueDate != nil {
		t.Errorf("Other must not carry a due date, got %v", got.DueDate)
	}
}

func TestNormalizeSuggestionEmptyInput(t *testing.T) {
	got := NormalizeSuggestion("", "", normalizeToday)

	if got.Category != models.CategoryOther {
		t.Errorf("category = %q, want Other", got.Category)
	}
	if got.Title != "Untitled" {
		t.Errorf("title = %q, want Untitled", got.Title)
	}
	if got.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want Medium", got.Priority)
	}
}

func TestNormalizeSuggestionUnknownCategory(t *testing.T) {
	raw := `{"category":"Bogus","title":"Something","priority":"Medium"}`

	got := NormalizeSuggestion(raw, "seed", normalizeToday)
	if got.Category != models.CategoryOther {
		t.Errorf("category = %q, want Other", got.Category)
	}
	if got.DueDate != nil {
		t.Errorf("Other must not carry a due date")
	}
}

func TestNormalizeSuggestionTitleFallbackShortSeed(t *testing.T) {
	raw := `{"category":"Personal","title":"  ","priority":"Low"}`

	got := NormalizeSuggestion(raw, "장보기", normalizeToday)
	if got.Title != "장보기" {
		t.Errorf("title = %q, want the seed preserved rune-for-rune", got.Title)
	}
}

func TestNormalizeSuggestionPriorityCoercion(t *testing.T) {
	for _, bad := range []string{"URGENT", "high", "", "2"} {
		raw := `{"category":"Work","title":"Report","priority":"` + bad + `"}`
		got := NormalizeSuggestion(raw, "seed", normalizeToday)
		if got.Priority != models.PriorityMedium {
			t.Errorf("priority %q coerced to %q, want Medium", bad, got.Priority)
		}
	}
}

func TestNormalizeSuggestionDueDatePresenceLaw(t *testing.T) {
	tests := []struct {
		category string
		wantDate bool
	}{
		{models.CategoryTask, true},
		{models.CategoryReminder, true},
		{models.CategoryIdea, false},
		{models.CategoryWork, false},
		{models.CategoryGoal, false},
		{models.CategoryPersonal, false},
		{models.CategoryOther, false},
	}

	for _, tt := range tests {
		raw := `{"category":"` + tt.category + `","title":"T","priority":"Medium","dueDate":"2026-03-15"}`
		got := NormalizeSuggestion(raw, "seed", normalizeToday)
		if (got.DueDate != nil) != tt.wantDate {
			t.Errorf("%s: dueDate presence = %v, want %v", tt.category, got.DueDate != nil, tt.wantDate)
		}
	}
}

func TestNormalizeSuggestionDueDateResolution(t *testing.T) {
	tests := []struct {
		name     string
		priority string
		dueDate  string
		want     time.Time
	}{
		{
			name:     "past date replaced with high-priority default",
			priority: "Medium",
			dueDate:  "2000-01-01",
			want:     noon(2026, 3, 11),
		},
		{
			name:     "far future clamped to one year",
			priority: "Low",
			dueDate:  "2030-01-01",
			want:     noon(2027, 3, 10),
		},
		{
			name:     "today stays today",
			priority: "High",
			dueDate:  "2026-03-10",
			want:     noon(2026, 3, 10),
		},
		{
			name:     "missing date high priority",
			priority: "High",
			dueDate:  "",
			want:     noon(2026, 3, 11),
		},
		{
			name:     "missing date medium priority",
			priority: "Medium",
			dueDate:  "",
			want:     noon(2026, 3, 13),
		},
		{
			name:     "missing date low priority",
			priority: "Low",
			dueDate:  "",
			want:     noon(2026, 3, 17),
		},
		{
			name:     "malformed date falls back to priority default",
			priority: "Medium",
			dueDate:  "next Friday",
			want:     noon(2026, 3, 13),
		},
		{
			name:     "impossible calendar date falls back",
			priority: "Medium",
			dueDate:  "2026-02-30",
			want:     noon(2026, 3, 13),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"category":"Task","title":"T","priority":"` + tt.priority + `","dueDate":"` + tt.dueDate + `"}`
			got := NormalizeSuggestion(raw, "seed", normalizeToday)
			if got.DueDate == nil {
				t.Fatal("Task must carry a due date")
			}
			if !got.DueDate.Equal(tt.want) {
				t.Errorf("dueDate = %v, want %v", got.DueDate, tt.want)
			}
		})
	}
}

func TestNormalizeSuggestionEstimatedTimeRejectsNonPositive(t *testing.T) {
	for _, raw := range []string{
		`{"category":"Task","title":"T","priority":"Low","estimatedTime":-5}`,
		`{"category":"Task","title":"T","priority":"Low","estimatedTime":0}`,
		`{"category":"Task","title":"T","priority":"Low","estimatedTime":"30"}`,
		`{"category":"Task","title":"T","priority":"Low","estimatedTime":null}`,
	} {
		got := NormalizeSuggestion(raw, "seed", normalizeToday)
		if got.EstimatedTime != nil {
			t.Errorf("estimatedTime = %v, want nil for %s", *got.EstimatedTime, raw)
		}
	}
}
