package model

import "time"

// Methods a consumption entry can be logged with. Membership is enforced
// when an entry is created; stored documents are only type-checked.
var Methods = []string{"joint", "bong", "pipe", "cigarette", "vape", "edible", "other"}

var Moods = []string{"great", "good", "neutral", "bad", "terrible"}

const (
	GoalReduce   = "reduce"
	GoalMaintain = "maintain"
	GoalQuit     = "quit"
	GoalStash    = "stash"
)

var GoalTypes = []string{GoalReduce, GoalMaintain, GoalQuit, GoalStash}

// Entry is one logged consumption event. JSON tags follow the persisted
// document format so exports from older versions of the app keep loading.
type Entry struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Notes     string    `json:"notes"`
	Mood      string    `json:"mood,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// Goal is the single active goal configuration, replaced wholesale on save.
// Exactly one of WeeklyAmount/StashAmount is the active budget depending on
// GoalType; the other is reset to 0 when the goal is saved.
type Goal struct {
	GoalType       string     `json:"goalType"`
	WeeklyAmount   float64    `json:"weeklyAmount"`
	StashAmount    float64    `json:"stashAmount"`
	StartDate      *time.Time `json:"startDate"`
	StashStartDate *time.Time `json:"stashStartDate"`
}

type Settings struct {
	PricePerGram float64 `json:"pricePerGram"`
	Currency     string  `json:"currency"`
}

// Alternatives tracks which substitute activities the user has tried.
// TriedItems holds "<category>-<title>" keys with no duplicates.
type Alternatives struct {
	TriedItems  []string   `json:"triedItems"`
	LastRefresh *time.Time `json:"lastRefresh"`
}

func DefaultGoal() Goal {
	return Goal{GoalType: GoalReduce}
}

func DefaultSettings() Settings {
	return Settings{PricePerGram: 10, Currency: "USD"}
}

func DefaultAlternatives() Alternatives {
	return Alternatives{TriedItems: []string{}}
}

func ValidMethod(method string) bool {
	return contains(Methods, method)
}

func ValidMood(mood string) bool {
	return contains(Moods, mood)
}

func ValidGoalType(goalType string) bool {
	return contains(GoalTypes, goalType)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
