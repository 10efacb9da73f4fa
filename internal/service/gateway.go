package service

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/selloa/weed-tracker/internal/model"
	"github.com/selloa/weed-tracker/internal/store"
)

// Persisted document keys.
const (
	KeyEntries      = "entries"
	KeyGoal         = "goal"
	KeySettings     = "settings"
	KeyAlternatives = "alternatives"
	BackupPrefix    = "backup_"
)

// Gateway loads and saves whole JSON documents through the key/value
// store. Loads validate and fall back to defaults; saves report success
// but never fail the caller, so the in-memory copy is never lost.
type Gateway struct {
	store *store.Store
	log   *zap.Logger
}

func NewGateway(st *store.Store, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{store: st, log: log}
}

// SortEntries sorts descending by timestamp, stable so same-timestamp
// entries keep insertion order.
func SortEntries(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}

func (g *Gateway) LoadEntries() []model.Entry {
	entries := make([]model.Entry, 0)
	if !g.store.Available() {
		g.log.Warn("store unavailable, starting with empty entries")
		return entries
	}
	raw, ok, err := g.store.Get(KeyEntries)
	if err != nil {
		g.log.Warn("read entries document", zap.Error(err))
		return entries
	}
	if !ok {
		return entries
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		g.log.Warn("entries document is corrupt, starting empty", zap.Error(err))
		return entries
	}
	dropped := 0
	for _, item := range items {
		m, isMap := item.(map[string]any)
		if !isMap || !ValidateEntry(m) {
			dropped++
			continue
		}
		entries = append(entries, decodeEntry(m))
	}
	if dropped > 0 {
		g.log.Warn("dropped invalid entry records", zap.Int("count", dropped))
	}
	SortEntries(entries)
	return entries
}

func (g *Gateway) SaveEntries(entries []model.Entry) bool {
	if entries == nil {
		entries = []model.Entry{}
	}
	return g.saveJSON(KeyEntries, entries)
}

func (g *Gateway) LoadGoal() model.Goal {
	m, ok := g.loadObject(KeyGoal)
	if !ok {
		return model.DefaultGoal()
	}
	if !ValidateGoal(m) {
		g.log.Warn("goal document is invalid, using defaults")
		return model.DefaultGoal()
	}
	return decodeGoal(m)
}

func (g *Gateway) SaveGoal(goal model.Goal) bool {
	return g.saveJSON(KeyGoal, goal)
}

func (g *Gateway) LoadSettings() model.Settings {
	m, ok := g.loadObject(KeySettings)
	if !ok {
		return model.DefaultSettings()
	}
	if !ValidateSettings(m) {
		g.log.Warn("settings document is invalid, using defaults")
		return model.DefaultSettings()
	}
	return decodeSettings(m)
}

func (g *Gateway) SaveSettings(settings model.Settings) bool {
	return g.saveJSON(KeySettings, settings)
}

func (g *Gateway) LoadAlternatives() model.Alternatives {
	m, ok := g.loadObject(KeyAlternatives)
	if !ok {
		return model.DefaultAlternatives()
	}
	alts := model.DefaultAlternatives()
	if items, isList := m["triedItems"].([]any); isList {
		seen := map[string]bool{}
		for _, item := range items {
			s, isString := item.(string)
			if !isString || s == "" || seen[s] {
				continue
			}
			seen[s] = true
			alts.TriedItems = append(alts.TriedItems, s)
		}
	}
	if t, err := ParseTimestamp(asString(m["lastRefresh"])); err == nil {
		alts.LastRefresh = &t
	}
	return alts
}

func (g *Gateway) SaveAlternatives(alts model.Alternatives) bool {
	if alts.TriedItems == nil {
		alts.TriedItems = []string{}
	}
	return g.saveJSON(KeyAlternatives, alts)
}

// Raw exposes a stored document without validation, for the doctor and
// for backup snapshots.
func (g *Gateway) Raw(key string) (string, bool, error) {
	return g.store.Get(key)
}

func (g *Gateway) SaveRaw(key, value string) bool {
	if !g.store.Available() {
		g.log.Warn("store unavailable, document not saved", zap.String("key", key))
		return false
	}
	if err := g.store.Set(key, value); err != nil {
		g.log.Warn("save document", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (g *Gateway) DeleteKey(key string) bool {
	if err := g.store.Delete(key); err != nil {
		g.log.Warn("delete document", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (g *Gateway) Keys(prefix string) ([]string, error) {
	return g.store.Keys(prefix)
}

// Clear removes the four live documents. Backups are deliberately kept.
func (g *Gateway) Clear() bool {
	ok := true
	for _, key := range []string{KeyEntries, KeyGoal, KeySettings, KeyAlternatives} {
		if !g.DeleteKey(key) {
			ok = false
		}
	}
	return ok
}

func (g *Gateway) loadObject(key string) (map[string]any, bool) {
	if !g.store.Available() {
		g.log.Warn("store unavailable, using defaults", zap.String("key", key))
		return nil, false
	}
	raw, ok, err := g.store.Get(key)
	if err != nil {
		g.log.Warn("read document", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		g.log.Warn("document is corrupt, using defaults", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return m, true
}

func (g *Gateway) saveJSON(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		g.log.Warn("marshal document", zap.String("key", key), zap.Error(err))
		return false
	}
	return g.SaveRaw(key, string(data))
}
