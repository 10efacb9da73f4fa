package service

import (
	"testing"
)

func minimalEntry() map[string]any {
	return map[string]any{
		"id":        float64(1718000000000),
		"amount":    0.5,
		"method":    "joint",
		"timestamp": "2024-06-10T12:00:00Z",
	}
}

func TestValidateEntryAcceptsMinimalRecord(t *testing.T) {
	if !ValidateEntry(minimalEntry()) {
		t.Fatalf("minimal record should be valid")
	}
}

func TestValidateEntryRejectsBadRecords(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"missing id", func(m map[string]any) { delete(m, "id") }},
		{"string id", func(m map[string]any) { m["id"] = "123" }},
		{"zero amount", func(m map[string]any) { m["amount"] = 0.0 }},
		{"negative amount", func(m map[string]any) { m["amount"] = -1.0 }},
		{"missing method", func(m map[string]any) { delete(m, "method") }},
		{"numeric method", func(m map[string]any) { m["method"] = 7.0 }},
		{"missing timestamp", func(m map[string]any) { delete(m, "timestamp") }},
		{"garbage timestamp", func(m map[string]any) { m["timestamp"] = "not-a-date" }},
		{"numeric notes", func(m map[string]any) { m["notes"] = 5.0 }},
		{"numeric mood", func(m map[string]any) { m["mood"] = 5.0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := minimalEntry()
			tc.mutate(m)
			if ValidateEntry(m) {
				t.Fatalf("record should be invalid")
			}
		})
	}
}

func TestValidateEntryNeverPanicsOnNonMaps(t *testing.T) {
	for _, candidate := range []any{nil, "x", 3.0, []any{1, 2}, true} {
		if ValidateEntry(candidate) {
			t.Fatalf("non-map candidate %v should be invalid", candidate)
		}
	}
}

func TestValidateGoal(t *testing.T) {
	valid := map[string]any{"goalType": "reduce", "weeklyAmount": 7.0}
	if !ValidateGoal(valid) {
		t.Fatalf("goal should be valid")
	}
	for name, m := range map[string]map[string]any{
		"unknown type":    {"goalType": "cosmic", "weeklyAmount": 7.0},
		"missing weekly":  {"goalType": "reduce"},
		"negative weekly": {"goalType": "reduce", "weeklyAmount": -1.0},
		"negative stash":  {"goalType": "stash", "weeklyAmount": 0.0, "stashAmount": -1.0},
	} {
		if ValidateGoal(m) {
			t.Fatalf("%s: goal should be invalid", name)
		}
	}
}

func TestValidateSettings(t *testing.T) {
	if !ValidateSettings(map[string]any{"pricePerGram": 10.0, "currency": "USD"}) {
		t.Fatalf("settings should be valid")
	}
	for name, m := range map[string]map[string]any{
		"negative price": {"pricePerGram": -1.0, "currency": "USD"},
		"blank currency": {"pricePerGram": 10.0, "currency": "  "},
		"no currency":    {"pricePerGram": 10.0},
	} {
		if ValidateSettings(m) {
			t.Fatalf("%s: settings should be invalid", name)
		}
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-06-10T12:00:00Z",
		"2024-06-10T12:00:00",
		"2024-06-10T12:00",
		"2024-06-10 12:00:00",
		"2024-06-10 12:00",
		"2024-06-10",
	} {
		if _, err := ParseTimestamp(value); err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
	}
	if _, err := ParseTimestamp("10/06/2024"); err == nil {
		t.Fatalf("expected slash date to be rejected")
	}
}

func TestSanitizeNotesStripsAngleBracketsAndCapsLength(t *testing.T) {
	if got := sanitizeNotes("  <b>relaxing</b> evening  "); got != "brelaxing/b evening" {
		t.Fatalf("unexpected sanitized notes: %q", got)
	}
	long := make([]rune, 600)
	for i := range long {
		long[i] = 'a'
	}
	if got := sanitizeNotes(string(long)); len([]rune(got)) != maxNotesLen {
		t.Fatalf("expected notes capped at %d runes, got %d", maxNotesLen, len([]rune(got)))
	}
}

func TestDecodeEntryCreatedAtFallsBackToTimestamp(t *testing.T) {
	m := minimalEntry()
	e := decodeEntry(m)
	if !e.CreatedAt.Equal(e.Timestamp) {
		t.Fatalf("expected createdAt to fall back to timestamp")
	}
	m["createdAt"] = "2024-06-11T08:00:00Z"
	e = decodeEntry(m)
	if e.CreatedAt.Equal(e.Timestamp) {
		t.Fatalf("expected explicit createdAt to be used")
	}
}
