package service

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed alternatives.yaml
var alternativesYAML []byte

// Alternative is one substitute activity the app can suggest instead of
// a consumption session.
type Alternative struct {
	Category    string `yaml:"category" json:"category"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Tried       bool   `yaml:"-" json:"tried"`
}

var (
	catalogOnce sync.Once
	catalogData []Alternative
	catalogErr  error
)

func Catalog() ([]Alternative, error) {
	catalogOnce.Do(func() {
		catalogErr = yaml.Unmarshal(alternativesYAML, &catalogData)
	})
	if catalogErr != nil {
		return nil, fmt.Errorf("parse alternatives catalog: %w", catalogErr)
	}
	return catalogData, nil
}

func AlternativeKey(category, title string) string {
	return category + "-" + title
}

// SampleAlternatives picks n items uniformly without replacement. The
// random source is injected so suggestions are reproducible in tests.
func SampleAlternatives(items []Alternative, n int, rng *rand.Rand) []Alternative {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []Alternative{}
	}
	picks := make([]Alternative, 0, n)
	for _, idx := range rng.Perm(len(items))[:n] {
		picks = append(picks, items[idx])
	}
	return picks
}

// SuggestAlternatives samples the catalog, marks which picks were already
// tried, and records the refresh time.
func (t *Tracker) SuggestAlternatives(n int, rng *rand.Rand) ([]Alternative, error) {
	items, err := Catalog()
	if err != nil {
		return nil, err
	}
	picks := SampleAlternatives(items, n, rng)
	for i := range picks {
		picks[i].Tried = t.hasTried(AlternativeKey(picks[i].Category, picks[i].Title))
	}
	now := t.now()
	t.Alternatives.LastRefresh = &now
	if !t.gw.SaveAlternatives(t.Alternatives) {
		t.log.Warn("alternatives state not persisted, in-memory copy kept")
	}
	return picks, nil
}

// MarkAlternativeTried records a "<category>-<title>" key in the tried
// set. Marking the same item twice is a no-op.
func (t *Tracker) MarkAlternativeTried(category, title string) error {
	category = strings.TrimSpace(category)
	title = strings.TrimSpace(title)
	if category == "" || title == "" {
		return fmt.Errorf("category and title are required")
	}
	key := AlternativeKey(category, title)
	if t.hasTried(key) {
		return nil
	}
	t.Alternatives.TriedItems = append(t.Alternatives.TriedItems, key)
	if !t.gw.SaveAlternatives(t.Alternatives) {
		t.log.Warn("alternatives state not persisted, in-memory copy kept")
	}
	return nil
}

func (t *Tracker) hasTried(key string) bool {
	for _, item := range t.Alternatives.TriedItems {
		if item == key {
			return true
		}
	}
	return false
}
