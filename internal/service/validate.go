package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
)

const maxNotesLen = 500

// Accepted timestamp layouts, roughly what a hand-edited or imported
// document may contain. RFC3339 variants cover everything this app writes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ValidateEntry reports whether an untrusted decoded document is a
// structurally valid entry. It never panics and never returns an error:
// anything unexpected is simply invalid. Method membership is enforced at
// entry creation, not here; the validator only checks types.
func ValidateEntry(candidate any) bool {
	m, ok := candidate.(map[string]any)
	if !ok || m == nil {
		return false
	}
	if _, ok := asNumber(m["id"]); !ok {
		return false
	}
	amount, ok := asNumber(m["amount"])
	if !ok || amount <= 0 {
		return false
	}
	if _, ok := m["method"].(string); !ok {
		return false
	}
	if v, present := m["notes"]; present && v != nil {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	if v, present := m["mood"]; present && v != nil {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	ts, ok := m["timestamp"].(string)
	if !ok {
		return false
	}
	if _, err := ParseTimestamp(ts); err != nil {
		return false
	}
	return true
}

func ValidateGoal(candidate any) bool {
	m, ok := candidate.(map[string]any)
	if !ok || m == nil {
		return false
	}
	weekly, ok := asNumber(m["weeklyAmount"])
	if !ok || weekly < 0 {
		return false
	}
	goalType, ok := m["goalType"].(string)
	if !ok || !model.ValidGoalType(goalType) {
		return false
	}
	if v, present := m["stashAmount"]; present && v != nil {
		stash, ok := asNumber(v)
		if !ok || stash < 0 {
			return false
		}
	}
	return true
}

func ValidateSettings(candidate any) bool {
	m, ok := candidate.(map[string]any)
	if !ok || m == nil {
		return false
	}
	price, ok := asNumber(m["pricePerGram"])
	if !ok || price < 0 {
		return false
	}
	currency, ok := m["currency"].(string)
	if !ok || strings.TrimSpace(currency) == "" {
		return false
	}
	return true
}

// decodeEntry converts an already-validated candidate into a typed entry.
func decodeEntry(m map[string]any) model.Entry {
	id, _ := asNumber(m["id"])
	amount, _ := asNumber(m["amount"])
	ts, _ := ParseTimestamp(asString(m["timestamp"]))

	e := model.Entry{
		ID:        int64(id),
		Amount:    amount,
		Method:    asString(m["method"]),
		Notes:     sanitizeNotes(asString(m["notes"])),
		Mood:      asString(m["mood"]),
		Timestamp: ts,
	}
	if created, err := ParseTimestamp(asString(m["createdAt"])); err == nil {
		e.CreatedAt = created
	} else {
		e.CreatedAt = ts
	}
	return e
}

func decodeGoal(m map[string]any) model.Goal {
	weekly, _ := asNumber(m["weeklyAmount"])
	stash, _ := asNumber(m["stashAmount"])
	g := model.Goal{
		GoalType:     asString(m["goalType"]),
		WeeklyAmount: weekly,
		StashAmount:  stash,
	}
	if t, err := ParseTimestamp(asString(m["startDate"])); err == nil {
		g.StartDate = &t
	}
	if t, err := ParseTimestamp(asString(m["stashStartDate"])); err == nil {
		g.StashStartDate = &t
	}
	return g
}

func decodeSettings(m map[string]any) model.Settings {
	price, _ := asNumber(m["pricePerGram"])
	return model.Settings{
		PricePerGram: price,
		Currency:     strings.TrimSpace(asString(m["currency"])),
	}
}

// sanitizeNotes strips angle brackets and caps the length. Applied on both
// the add path and the load path so hand-edited documents end up clean too.
func sanitizeNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "<", "")
	notes = strings.ReplaceAll(notes, ">", "")
	notes = strings.TrimSpace(notes)
	runes := []rune(notes)
	if len(runes) > maxNotesLen {
		return string(runes[:maxNotesLen])
	}
	return notes
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
