package services

import (
	"fmt"
	"strings"
)

// PromptPart is one element of the user turn sent to the model: either
// text or an image reference, never both.
type PromptPart struct {
	Text     string
	ImageURL string
}

// SuggestionPrompt is the full model input for one classification
// request: fixed system instructions plus a single user turn.
type SuggestionPrompt struct {
	System string
	Parts  []PromptPart
}

// BuildSuggestionPrompt produces the model input for a classification
// request: a text part when text is present, then one image part per
// URL. Deterministic given the same text, images, and date; callers
// must ensure at least one of trimmedText/images is non-empty.
func BuildSuggestionPrompt(trimmedText string, images []string, todayISO string) SuggestionPrompt {
	parts := make([]PromptPart, 0, len(images)+1)

	if trimmedText != "" {
		parts = append(parts, PromptPart{Text: "Analyze and categorize this: " + trimmedText})
	}

	for _, img := range images {
		parts = append(parts, PromptPart{ImageURL: img})
	}

	return SuggestionPrompt{
		System: buildSystemInstructions(todayISO),
		Parts:  parts,
	}
}

func buildSystemInstructions(todayISO string) string {
	var b strings.Builder

	// Layer 1 — Role and date anchor
	b.WriteString("You are an AI assistant that helps organize thoughts and notes for people with ADHD.\n")
	b.WriteString(fmt.Sprintf("Today's date is: %s\n\n", todayISO))

	// Layer 2 — Language rule
	b.WriteString(`LANGUAGE RULE:
1. Detect the language of the user's input text.
2. Generate the "title" and "tags" in exactly that language. Do not translate.
3. For Korean titles, produce natural, grammatically correct Korean phrases.

Title examples by category:
- "I need to buy groceries for dinner" -> "Buy groceries"
- "Don't forget mom's birthday next week" -> "Mom's birthday"
- "장을 봐야 해" -> "장보기"
- "내일 약 먹기" -> "약 복용"

`)

	// Layer 3 — Extraction task
	b.WriteString(`Analyze the given text and/or images and provide:
1. A category from: Task, Idea, Reminder, Work, Goal, Personal, Other
2. A short, descriptive title (max 6 words) in the input's language that
   captures the main action or key point. For Tasks, start with an
   action verb. Avoid filler words.
3. Priority level: High, Medium, or Low
4. Estimated time in minutes (for tasks/activities)
5. Up to 3 relevant single-word tags in the input's language
6. For Task and Reminder categories, ALWAYS provide a due date:
   - First try to extract a date from the text (tomorrow, next week, Friday, ...)
   - If no date is mentioned, suggest based on priority:
     High: 1-2 days from today. Medium: 3-7 days. Low: 7-14 days.
   - Format: YYYY-MM-DD
7. If images are provided: extract text, identify objects, understand
   context (screenshots, handwritten notes, receipts, schedules).

Categories explained:
- Task: specific action items, to-dos, things that need to be done
- Idea: creative thoughts, concepts, brainstorming, "what if" scenarios
- Reminder: time-sensitive items, appointments, deadlines, "don't forget"
- Work: professional activities, job-related items, meetings
- Goal: long-term aspirations, objectives, future plans
- Personal: personal life, emotions, hobbies, relationships, daily life
- Other: only if the input truly fits none of the above

`)

	// Layer 4 — Output contract
	b.WriteString(`Respond with ONLY a valid JSON object in this exact format, no comments,
no markdown, no backticks, nothing before or after it:
{
  "category": "CategoryName",
  "title": "Short Descriptive Title",
  "priority": "High/Medium/Low",
  "estimatedTime": 30,
  "tags": ["tag1", "tag2", "tag3"],
  "dueDate": "YYYY-MM-DD"
}

Category and priority values are always in English. For Task and
Reminder the dueDate must be a date string, not null. For missing
values use null, not "null".`)

	return b.String()
}
