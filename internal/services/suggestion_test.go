package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"notemind-backend/internal/models"
)

// fakeModel records the last prompt and returns a canned response.
type fakeModel struct {
	response string
	err      error
	calls    int

	lastSystem string
	lastParts  []PromptPart
}

func (m *fakeModel) Generate(ctx context.Context, system string, parts []PromptPart) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastParts = parts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestService(model ModelClient, today time.Time) *SuggestionService {
	svc := NewSuggestionService(model)
	svc.now = func() time.Time { return today }
	return svc
}

func TestSuggestKoreanReminder(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	model := &fakeModel{
		response: `{"category":"Reminder","title":"치과 예약","priority":"High","tags":["치과"],"dueDate":"2026-03-11"}`,
	}
	svc := newTestService(model, today)

	draft, err := svc.Suggest(context.Background(), models.SuggestRequest{Content: "내일 치과 예약"})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if draft.Category.Name != models.CategoryReminder {
		t.Errorf("category = %q, want Reminder", draft.Category.Name)
	}
	if draft.Title != "치과 예약" {
		t.Errorf("title = %q", draft.Title)
	}
	if draft.Content != "내일 치과 예약" {
		t.Errorf("content = %q, want the original text", draft.Content)
	}
	if draft.Completion == nil {
		t.Fatal("Reminder draft must carry completion state")
	}
	want := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	if !draft.Completion.DueDate.Equal(want) {
		t.Errorf("dueDate = %v, want %v", draft.Completion.DueDate, want)
	}
	if model.calls != 1 {
		t.Errorf("model called %d times, want 1", model.calls)
	}
}

func TestSuggestEmptyInputSkipsModel(t *testing.T) {
	model := &fakeModel{response: `{}`}
	svc := newTestService(model, time.Now())

	_, err := svc.Suggest(context.Background(), models.SuggestRequest{Content: "   \n\t "})

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Fields["content"] == "" {
		t.Error("expected a field error for content")
	}
	if model.calls != 0 {
		t.Errorf("model called %d times on empty input, want 0", model.calls)
	}
}

func TestSuggestInvalidImageSkipsModel(t *testing.T) {
	model := &fakeModel{response: `{}`}
	svc := newTestService(model, time.Now())

	_, err := svc.Suggest(context.Background(), models.SuggestRequest{
		Content: "note with a bad image",
		Images:  []string{"https://imgur.com/a.jpg"},
	})

	var imgErr *ImageValidationError
	if !errors.As(err, &imgErr) {
		t.Fatalf("expected ImageValidationError, got %v", err)
	}
	if imgErr.Reason != "DISALLOWED_SOURCE" {
		t.Errorf("reason = %q", imgErr.Reason)
	}
	if model.calls != 0 {
		t.Errorf("model called %d times on invalid images, want 0", model.calls)
	}
}

func TestSuggestPropagatesRateLimit(t *testing.T) {
	model := &fakeModel{err: &RateLimitError{Message: "AI service is busy"}}
	svc := newTestService(model, time.Now())

	_, err := svc.Suggest(context.Background(), models.SuggestRequest{Content: "anything"})

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
}

func TestSuggestGarbageModelOutputDegrades(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	model := &fakeModel{response: `Sure! Here's the JSON: {category: Task`}
	svc := newTestService(model, today)

	draft, err := svc.Suggest(context.Background(), models.SuggestRequest{Content: "remember the milk"})
	if err != nil {
		t.Fatalf("garbage output must not fail the pipeline: %v", err)
	}
	if draft.Category.Name != models.CategoryOther {
		t.Errorf("category = %q, want Other", draft.Category.Name)
	}
	if draft.Title != "remember the milk" {
		t.Errorf("title = %q, want the text as fallback title", draft.Title)
	}
}

func TestSuggestPromptCarriesDateAndImages(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	model := &fakeModel{response: `{"category":"Other","title":"T","priority":"Low"}`}
	svc := newTestService(model, today)

	img := "https://res.cloudinary.com/demo/image/upload/v1/a.jpg"
	_, err := svc.Suggest(context.Background(), models.SuggestRequest{
		Content: "  check this out  ",
		Images:  []string{img},
	})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}

	if !strings.Contains(model.lastSystem, "2026-03-10") {
		t.Error("system instructions missing today's date")
	}
	if len(model.lastParts) != 2 {
		t.Fatalf("parts = %d, want text + image", len(model.lastParts))
	}
	if model.lastParts[0].Text != "Analyze and categorize this: check this out" {
		t.Errorf("text part = %q", model.lastParts[0].Text)
	}
	if model.lastParts[1].ImageURL != img {
		t.Errorf("image part = %q", model.lastParts[1].ImageURL)
	}
}
