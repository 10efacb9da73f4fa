package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selloa/weed-tracker/internal/model"
	"github.com/selloa/weed-tracker/internal/store"
)

// Tracker holds the in-memory snapshot of all persisted state and applies
// every mutation as validate -> mutate -> persist. Persist failures are
// logged and surfaced as warnings, never as lost state: the in-memory copy
// always wins. There is no ambient global; callers own the instance.
type Tracker struct {
	Entries      []model.Entry
	Goal         model.Goal
	Settings     model.Settings
	Alternatives model.Alternatives

	gw  *Gateway
	log *zap.Logger
	now func() time.Time
}

func NewTracker(st *store.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	gw := NewGateway(st, log)
	return &Tracker{
		Entries:      gw.LoadEntries(),
		Goal:         gw.LoadGoal(),
		Settings:     gw.LoadSettings(),
		Alternatives: gw.LoadAlternatives(),
		gw:           gw,
		log:          log,
		now:          time.Now,
	}
}

// SetClock overrides the current-time source, used by tests and by read
// paths that need a pinned "now".
func (t *Tracker) SetClock(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

func (t *Tracker) Now() time.Time {
	return t.now()
}

type AddEntryInput struct {
	Amount float64
	Method string
	Notes  string
	Mood   string
	At     time.Time
}

func (t *Tracker) AddEntry(in AddEntryInput) (model.Entry, error) {
	if in.Amount <= 0 || in.Amount > 1000 {
		return model.Entry{}, fmt.Errorf("amount must be > 0 and <= 1000 grams")
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !model.ValidMethod(method) {
		return model.Entry{}, fmt.Errorf("invalid method %q (expected one of: %s)", in.Method, strings.Join(model.Methods, ", "))
	}
	mood := strings.ToLower(strings.TrimSpace(in.Mood))
	if mood != "" && !model.ValidMood(mood) {
		return model.Entry{}, fmt.Errorf("invalid mood %q (expected one of: %s)", in.Mood, strings.Join(model.Moods, ", "))
	}

	now := t.now()
	at := in.At
	if at.IsZero() {
		at = now
	}
	entry := model.Entry{
		ID:        now.UnixMilli(),
		Amount:    in.Amount,
		Method:    method,
		Notes:     sanitizeNotes(in.Notes),
		Mood:      mood,
		Timestamp: at,
		CreatedAt: now,
	}
	if !ValidateEntry(toCandidate(entry)) {
		return model.Entry{}, fmt.Errorf("constructed entry failed validation")
	}

	entries := make([]model.Entry, 0, len(t.Entries)+1)
	entries = append(entries, t.Entries...)
	entries = append(entries, entry)
	SortEntries(entries)
	t.Entries = entries
	t.persistEntries()
	return entry, nil
}

func (t *Tracker) DeleteEntry(id int64) error {
	idx := -1
	for i := range t.Entries {
		if t.Entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("entry %d not found", id)
	}
	entries := make([]model.Entry, 0, len(t.Entries)-1)
	entries = append(entries, t.Entries[:idx]...)
	entries = append(entries, t.Entries[idx+1:]...)
	t.Entries = entries
	t.persistEntries()
	return nil
}

type SaveGoalInput struct {
	GoalType     string
	WeeklyAmount float64
	StashAmount  float64
}

func (t *Tracker) SaveGoal(in SaveGoalInput) error {
	goalType := strings.ToLower(strings.TrimSpace(in.GoalType))
	if !model.ValidGoalType(goalType) {
		return fmt.Errorf("invalid goal type %q (expected one of: %s)", in.GoalType, strings.Join(model.GoalTypes, ", "))
	}
	if in.WeeklyAmount < 0 {
		return fmt.Errorf("weekly amount must be >= 0")
	}
	if in.StashAmount < 0 {
		return fmt.Errorf("stash amount must be >= 0")
	}

	now := t.now()
	goal := model.Goal{GoalType: goalType}
	if goalType == model.GoalStash {
		goal.StashAmount = in.StashAmount
		goal.StashStartDate = &now
	} else {
		goal.WeeklyAmount = in.WeeklyAmount
		goal.StartDate = &now
	}
	if !ValidateGoal(toCandidate(goal)) {
		return fmt.Errorf("constructed goal failed validation")
	}
	t.Goal = goal
	if !t.gw.SaveGoal(goal) {
		t.log.Warn("goal not persisted, in-memory copy kept")
	}
	return nil
}

func (t *Tracker) ResetGoal() error {
	t.Goal = model.DefaultGoal()
	if !t.gw.SaveGoal(t.Goal) {
		t.log.Warn("goal reset not persisted, in-memory copy kept")
	}
	return nil
}

func (t *Tracker) SaveSettings(pricePerGram float64, currency string) error {
	if pricePerGram < 0 {
		return fmt.Errorf("price per gram must be >= 0")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return fmt.Errorf("currency is required")
	}
	settings := model.Settings{PricePerGram: pricePerGram, Currency: currency}
	if !ValidateSettings(toCandidate(settings)) {
		return fmt.Errorf("constructed settings failed validation")
	}
	t.Settings = settings
	if !t.gw.SaveSettings(settings) {
		t.log.Warn("settings not persisted, in-memory copy kept")
	}
	return nil
}

// ClearAll resets live state to defaults and removes the live documents.
// Backups survive a clear.
func (t *Tracker) ClearAll() error {
	t.Entries = make([]model.Entry, 0)
	t.Goal = model.DefaultGoal()
	t.Settings = model.DefaultSettings()
	t.Alternatives = model.DefaultAlternatives()
	if !t.gw.Clear() {
		t.log.Warn("stored documents not fully cleared")
	}
	return nil
}

func (t *Tracker) persistEntries() {
	if !t.gw.SaveEntries(t.Entries) {
		t.log.Warn("entries not persisted, in-memory copy kept")
	}
}

// toCandidate runs a typed value through JSON so the boundary validators
// see the same shape a stored or imported document would have.
func toCandidate(value any) any {
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
