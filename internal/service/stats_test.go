package service

import (
	"math"
	"testing"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
)

func TestTodayAggregateUsesRolling24hWindow(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 0.5, testNow.Add(-1*time.Hour)),
		entryAt(2, 0.3, testNow.Add(-23*time.Hour)),
		entryAt(3, 1.0, testNow.Add(-25*time.Hour)), // outside the window
	}
	agg := TodayAggregate(entries, model.Settings{PricePerGram: 10, Currency: "USD"}, testNow)

	if agg.Count != 2 {
		t.Fatalf("expected 2 entries in window, got %d", agg.Count)
	}
	if math.Abs(agg.Grams-0.8) > 1e-9 {
		t.Fatalf("expected 0.8g, got %g", agg.Grams)
	}
	if agg.Cost != 8 {
		t.Fatalf("expected cost 8, got %g", agg.Cost)
	}
}

func TestTodayAggregateRoundsCostToCents(t *testing.T) {
	entries := []model.Entry{entryAt(1, 0.333, testNow.Add(-time.Hour))}
	agg := TodayAggregate(entries, model.Settings{PricePerGram: 10, Currency: "USD"}, testNow)
	if agg.Cost != 3.33 {
		t.Fatalf("expected cost 3.33, got %g", agg.Cost)
	}
}

func TestWeekTotalsAlwaysDividesBySeven(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 1.0, testNow.Add(-2*24*time.Hour)),
		entryAt(2, 2.0, testNow.Add(-5*24*time.Hour)),
		entryAt(3, 9.0, testNow.Add(-8*24*time.Hour)), // outside the window
	}
	agg := WeekTotals(entries, testNow)

	if agg.Count != 2 {
		t.Fatalf("expected 2 entries in window, got %d", agg.Count)
	}
	if math.Abs(agg.Grams-3.0) > 1e-9 {
		t.Fatalf("expected 3.0g, got %g", agg.Grams)
	}
	want := 3.0 / 7
	if math.Abs(agg.DailyAverage-want) > 1e-9 {
		t.Fatalf("expected average %g, got %g", want, agg.DailyAverage)
	}
}

func TestProgressWithoutWeeklyGoal(t *testing.T) {
	p := Progress(nil, model.Goal{GoalType: model.GoalReduce}, testNow)
	if p.Text != "Set a weekly goal to track progress" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
	if p.Percent != 0 {
		t.Fatalf("expected 0 percent, got %g", p.Percent)
	}
}

func TestProgressWeeklyRemaining(t *testing.T) {
	entries := []model.Entry{entryAt(1, 3.0, testNow.Add(-24*time.Hour))}
	p := Progress(entries, model.Goal{GoalType: model.GoalReduce, WeeklyAmount: 7}, testNow)

	if p.Text != "4.0g remaining this week" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
	if math.Abs(p.Remaining-4.0) > 1e-9 {
		t.Fatalf("expected 4.0 remaining, got %g", p.Remaining)
	}
}

func TestProgressWeeklyExceededClampsPercent(t *testing.T) {
	entries := []model.Entry{entryAt(1, 10.0, testNow.Add(-24*time.Hour))}
	p := Progress(entries, model.Goal{GoalType: model.GoalReduce, WeeklyAmount: 7}, testNow)

	if p.Percent != 100 {
		t.Fatalf("expected percent clamped to 100, got %g", p.Percent)
	}
	if p.Text != "Goal exceeded by 3.0g" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
}

func TestProgressStashDepleted(t *testing.T) {
	start := testNow.Add(-10 * 24 * time.Hour)
	entries := []model.Entry{
		entryAt(1, 7.0, testNow.Add(-3*24*time.Hour)),
		entryAt(2, 5.0, testNow.Add(-1*24*time.Hour)),
	}
	goal := model.Goal{GoalType: model.GoalStash, StashAmount: 10, StashStartDate: &start}
	p := Progress(entries, goal, testNow)

	if p.Text != "Stash depleted by 2.0g" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
	if p.Percent != 100 {
		t.Fatalf("expected percent clamped to 100, got %g", p.Percent)
	}
}

func TestProgressStashIgnoresEntriesBeforeStart(t *testing.T) {
	start := testNow.Add(-2 * 24 * time.Hour)
	entries := []model.Entry{
		entryAt(1, 5.0, testNow.Add(-3*24*time.Hour)), // before the stash started
		entryAt(2, 2.0, testNow.Add(-1*24*time.Hour)),
	}
	goal := model.Goal{GoalType: model.GoalStash, StashAmount: 10, StashStartDate: &start}
	p := Progress(entries, goal, testNow)

	if p.Text != "8.0g left in stash" {
		t.Fatalf("unexpected text: %q", p.Text)
	}
}

func TestStreakZeroWithoutEntryToday(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 0.5, testNow.Add(-24*time.Hour)),
		entryAt(2, 0.5, testNow.Add(-48*time.Hour)),
	}
	s := Streak(entries, testNow)

	if s.Count != 0 {
		t.Fatalf("expected streak 0 without an entry today, got %d", s.Count)
	}
	if s.Label != "No streak yet" {
		t.Fatalf("unexpected label: %q", s.Label)
	}
}

func TestStreakCountsConsecutiveDaysEndingToday(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 0.5, testNow.Add(-2*time.Hour)),     // today
		entryAt(2, 0.5, testNow.Add(-26*time.Hour)),    // yesterday
		entryAt(3, 0.5, testNow.Add(-50*time.Hour)),    // two days ago
		entryAt(4, 0.5, testNow.Add(-5*24*time.Hour)),  // gap before this one
	}
	s := Streak(entries, testNow)

	if s.Count != 3 {
		t.Fatalf("expected streak 3, got %d", s.Count)
	}
	if s.Label != "day streak (including today)" {
		t.Fatalf("unexpected label: %q", s.Label)
	}
}

func TestTimeSinceLastEmpty(t *testing.T) {
	info := TimeSinceLast(nil, testNow)
	if info.Value != 0 || info.Unit != "hours" || info.Text != "No usage yet" {
		t.Fatalf("unexpected empty result: %+v", info)
	}
}

func TestTimeSinceLastPicksMaxTimestampNotSortOrder(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 0.5, testNow.Add(-10*time.Hour)),
		entryAt(2, 1.5, testNow.Add(-3*time.Hour)), // newest, deliberately not first
	}
	info := TimeSinceLast(entries, testNow)

	if info.Value != 3 || info.Unit != "hours" {
		t.Fatalf("expected 3 hours, got %d %s", info.Value, info.Unit)
	}
	want := "Last usage: 1.5g Joint at 12:00 PM"
	if info.Text != want {
		t.Fatalf("unexpected text: %q (want %q)", info.Text, want)
	}
}

func TestTimeSinceLastUnitSelection(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		value   int
		unit    string
	}{
		{"minutes", 30 * time.Minute, 30, "minutes"},
		{"hours", 5 * time.Hour, 5, "hours"},
		{"days", 72 * time.Hour, 3, "days"},
		{"months", 70 * 24 * time.Hour, 2, "months"},
		{"years", 800 * 24 * time.Hour, 2, "years"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries := []model.Entry{entryAt(1, 1.0, testNow.Add(-tc.elapsed))}
			info := TimeSinceLast(entries, testNow)
			if info.Value != tc.value || info.Unit != tc.unit {
				t.Fatalf("expected %d %s, got %d %s", tc.value, tc.unit, info.Value, info.Unit)
			}
		})
	}
}

func TestTimeSinceLastCapsDisplayValue(t *testing.T) {
	// 150 years ago overflows the display cap.
	entries := []model.Entry{entryAt(1, 1.0, testNow.AddDate(-150, 0, 0))}
	info := TimeSinceLast(entries, testNow)
	if info.Unit != "years" || info.Value != 99 {
		t.Fatalf("expected capped 99 years, got %d %s", info.Value, info.Unit)
	}
}
