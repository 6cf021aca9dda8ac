package services

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"notemind-backend/internal/models"
)

// priorityDays maps a final priority to the default due-date offset in
// days when the model supplies no usable date.
var priorityDays = map[string]int{
	models.PriorityHigh:   1,
	models.PriorityMedium: 3,
	models.PriorityLow:    7,
}

const (
	defaultPriorityDays = 3
	maxFutureDays       = 365
	fallbackTitleLimit  = 30
	untitledFallback    = "Untitled"
)

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeSuggestion repairs raw model output into a valid
// NormalizedSuggestion. It is total: any string input, including empty
// or non-JSON text, yields a suggestion whose invariants hold —
// category in the closed set, non-empty title, valid priority, and a
// due date present exactly when the category requires one.
func NormalizeSuggestion(raw, fallbackTitleSeed string, today time.Time) models.NormalizedSuggestion {
	parsed := parseRawSuggestion(raw)

	category := parsed.category
	if !models.IsValidCategory(category) {
		category = models.CategoryOther
	}

	title := strings.TrimSpace(parsed.title)
	if title == "" {
		title = fallbackTitle(fallbackTitleSeed)
	}

	priority := parsed.priority
	if priority != models.PriorityHigh && priority != models.PriorityMedium && priority != models.PriorityLow {
		priority = models.PriorityMedium
	}

	norm := models.NormalizedSuggestion{
		Category:      category,
		Title:         title,
		Priority:      priority,
		EstimatedTime: parsed.estimatedTime,
		Tags:          parsed.tags,
		Summary:       parsed.summary,
	}

	if models.RequiresDueDate(category) {
		due := resolveDueDate(parsed.dueDate, priority, today)
		norm.DueDate = &due
	}

	return norm
}

// parsedSuggestion holds the untrusted fields picked out of the raw
// model output. Every field may be missing.
type parsedSuggestion struct {
	category      string
	title         string
	priority      string
	estimatedTime *int
	tags          []string
	summary       string
	dueDate       string
}

func parseRawSuggestion(raw string) parsedSuggestion {
	cleaned := stripCodeFences(raw)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		// Models often wrap the object in commentary; retry on the
		// outermost braces before giving up.
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start || json.Unmarshal([]byte(cleaned[start:end+1]), &fields) != nil {
			return parsedSuggestion{}
		}
	}

	return parsedSuggestion{
		category:      stringField(fields, "category"),
		title:         stringField(fields, "title"),
		priority:      stringField(fields, "priority"),
		estimatedTime: intField(fields, "estimatedTime"),
		tags:          stringSliceField(fields, "tags"),
		summary:       stringField(fields, "summary"),
		dueDate:       stringField(fields, "dueDate"),
	}
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

func intField(fields map[string]interface{}, key string) *int {
	f, ok := fields[key].(float64)
	if !ok || f <= 0 {
		return nil
	}
	n := int(f)
	return &n
}

func stringSliceField(fields map[string]interface{}, key string) []string {
	items, ok := fields[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// fallbackTitle derives a deterministic title from the request text
// when the model provides none.
func fallbackTitle(seed string) string {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return untitledFallback
	}
	runes := []rune(seed)
	if len(runes) > fallbackTitleLimit {
		return string(runes[:fallbackTitleLimit])
	}
	return seed
}

// resolveDueDate turns the model's dueDate string into a concrete
// timestamp at noon UTC. Past dates are discarded in favor of the
// High-priority default; dates beyond a year out are clamped to
// exactly a year.
func resolveDueDate(rawDate, priority string, today time.Time) time.Time {
	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if dueDatePattern.MatchString(rawDate) {
		if parsed, err := time.Parse("2006-01-02", rawDate); err == nil {
			switch {
			case parsed.Before(todayDay):
				return noonUTC(todayDay.AddDate(0, 0, priorityDays[models.PriorityHigh]))
			case parsed.After(todayDay.AddDate(0, 0, maxFutureDays)):
				return noonUTC(todayDay.AddDate(0, 0, maxFutureDays))
			default:
				return noonUTC(parsed)
			}
		}
	}

	days, ok := priorityDays[priority]
	if !ok {
		days = defaultPriorityDays
	}
	return noonUTC(todayDay.AddDate(0, 0, days))
}

// noonUTC pins a date to 12:00 UTC so date-only comparisons and
// client display do not shift across timezones.
func noonUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}
