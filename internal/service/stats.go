package service

import (
	"fmt"
	"math"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
)

// All statistics are pure over (entries, goal, settings, now). "now" is
// explicit so the presentation layer can refresh on a timer and tests can
// pin the clock.

type DayAggregate struct {
	Count int     `json:"count"`
	Grams float64 `json:"grams"`
	Cost  float64 `json:"cost"`
}

type WeekAggregate struct {
	Count        int     `json:"count"`
	Grams        float64 `json:"grams"`
	DailyAverage float64 `json:"dailyAverage"`
}

type GoalProgress struct {
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	Text      string  `json:"text"`
}

type StreakInfo struct {
	Count int    `json:"count"`
	Label string `json:"label"`
}

type ElapsedInfo struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
	Text  string `json:"text"`
}

// TodayAggregate sums the rolling 24-hour window ending at now. This is
// deliberately not a calendar day.
func TodayAggregate(entries []model.Entry, settings model.Settings, now time.Time) DayAggregate {
	agg := DayAggregate{}
	start := now.Add(-24 * time.Hour)
	for _, e := range entries {
		if inWindow(e.Timestamp, start, now) {
			agg.Count++
			agg.Grams += e.Amount
		}
	}
	agg.Cost = round2(agg.Grams * settings.PricePerGram)
	return agg
}

// WeekTotals sums the rolling 7-day window ending at now. The daily
// average always divides by 7 regardless of how many days have data.
func WeekTotals(entries []model.Entry, now time.Time) WeekAggregate {
	agg := WeekAggregate{}
	start := now.Add(-7 * 24 * time.Hour)
	for _, e := range entries {
		if inWindow(e.Timestamp, start, now) {
			agg.Count++
			agg.Grams += e.Amount
		}
	}
	agg.DailyAverage = agg.Grams / 7
	return agg
}

func Progress(entries []model.Entry, goal model.Goal, now time.Time) GoalProgress {
	if goal.GoalType == model.GoalStash {
		return stashProgress(entries, goal, now)
	}
	if goal.WeeklyAmount <= 0 {
		return GoalProgress{Text: "Set a weekly goal to track progress"}
	}
	weekSum := WeekTotals(entries, now).Grams
	remaining := goal.WeeklyAmount - weekSum
	progress := GoalProgress{
		Percent:   math.Min(weekSum/goal.WeeklyAmount*100, 100),
		Remaining: remaining,
	}
	if remaining > 0 {
		progress.Text = fmt.Sprintf("%.1fg remaining this week", remaining)
	} else {
		progress.Text = fmt.Sprintf("Goal exceeded by %.1fg", -remaining)
	}
	return progress
}

func stashProgress(entries []model.Entry, goal model.Goal, now time.Time) GoalProgress {
	if goal.StashAmount <= 0 {
		return GoalProgress{Text: "Set a stash goal to track progress"}
	}
	since := now
	if goal.StashStartDate != nil {
		since = *goal.StashStartDate
	}
	totalUsed := 0.0
	for _, e := range entries {
		if inWindow(e.Timestamp, since, now) {
			totalUsed += e.Amount
		}
	}
	remaining := goal.StashAmount - totalUsed
	progress := GoalProgress{
		Percent:   math.Min(totalUsed/goal.StashAmount*100, 100),
		Remaining: remaining,
	}
	if remaining > 0 {
		progress.Text = fmt.Sprintf("%.1fg left in stash", remaining)
	} else {
		progress.Text = fmt.Sprintf("Stash depleted by %.1fg", -remaining)
	}
	return progress
}

// Streak walks backward one calendar day at a time starting from today
// (local midnight truncation) and stops at the first day without an
// entry. A day with zero entries today therefore always yields count 0,
// which makes the "last entry yesterday" label unreachable through this
// walk; the branch is kept because the original defines it, but it looks
// like a latent defect there rather than intended behavior.
func Streak(entries []model.Entry, now time.Time) StreakInfo {
	days := map[string]bool{}
	for _, e := range entries {
		days[e.Timestamp.In(now.Location()).Format("2006-01-02")] = true
	}

	count := 0
	day := beginningOfDay(now)
	for days[day.Format("2006-01-02")] {
		count++
		day = day.AddDate(0, 0, -1)
	}

	info := StreakInfo{Count: count}
	switch {
	case count == 0:
		info.Label = "No streak yet"
	case days[beginningOfDay(now).Format("2006-01-02")]:
		info.Label = "day streak (including today)"
	default:
		info.Label = "day streak (last entry yesterday)"
	}
	return info
}

// Elapsed-time unit divisors, matching common calendar approximations.
const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44
	maxUnitValue = 99
)

// TimeSinceLast reports the time since the most recent entry. It scans
// for the maximum timestamp instead of trusting sort order, guarding
// against a caller-introduced ordering violation.
func TimeSinceLast(entries []model.Entry, now time.Time) ElapsedInfo {
	if len(entries) == 0 {
		return ElapsedInfo{Value: 0, Unit: "hours", Text: "No usage yet"}
	}
	last := entries[0]
	for _, e := range entries[1:] {
		if e.Timestamp.After(last.Timestamp) {
			last = e
		}
	}

	elapsed := now.Sub(last.Timestamp)
	minutes := int(elapsed.Minutes())
	hours := int(elapsed.Hours())
	days := int(elapsed.Hours() / 24)
	months := int(elapsed.Hours() / 24 / daysPerMonth)
	years := int(elapsed.Hours() / 24 / daysPerYear)

	info := ElapsedInfo{}
	switch {
	case years > 0:
		info.Value, info.Unit = years, "years"
	case months > 0:
		info.Value, info.Unit = months, "months"
	case days > 0:
		info.Value, info.Unit = days, "days"
	case hours > 0:
		info.Value, info.Unit = hours, "hours"
	default:
		info.Value, info.Unit = max(minutes, 0), "minutes"
	}
	if info.Value > maxUnitValue {
		info.Value = maxUnitValue
	}
	info.Text = fmt.Sprintf("Last usage: %gg %s at %s",
		last.Amount, methodLabel(last.Method), last.Timestamp.In(now.Location()).Format("3:04 PM"))
	return info
}

func methodLabel(method string) string {
	if method == "" {
		return "Other"
	}
	if method[0] >= 'a' && method[0] <= 'z' {
		return string(method[0]-'a'+'A') + method[1:]
	}
	return method
}

func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
