package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/selloa/weed-tracker/internal/model"
)

// MaxImportBytes caps the accepted import payload at 10 MB.
const MaxImportBytes = 10 << 20

const backupKeep = 5

type ExportDocument struct {
	Entries    []model.Entry  `json:"entries"`
	Goal       model.Goal     `json:"goal"`
	Settings   model.Settings `json:"settings"`
	ExportDate time.Time      `json:"exportDate"`
}

type BackupDocument struct {
	Entries    []model.Entry  `json:"entries"`
	Goal       model.Goal     `json:"goal"`
	Settings   model.Settings `json:"settings"`
	BackupDate time.Time      `json:"backupDate"`
}

type ImportPreview struct {
	EntryCount int    `json:"entryCount"`
	ExportDate string `json:"exportDate"`
}

type BackupSummary struct {
	Key        string `json:"key"`
	BackupDate string `json:"backupDate"`
	EntryCount int    `json:"entryCount"`
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("weed-tracker-export-%s.json", now.Format("2006-01-02"))
}

// Export bundles the full state into one portable document. State that
// fails its own validators is refused rather than written out.
func (t *Tracker) Export() ([]byte, error) {
	if !ValidateGoal(toCandidate(t.Goal)) {
		return nil, fmt.Errorf("goal state failed validation, refusing to export")
	}
	if !ValidateSettings(toCandidate(t.Settings)) {
		return nil, fmt.Errorf("settings state failed validation, refusing to export")
	}
	doc := ExportDocument{
		Entries:    t.Entries,
		Goal:       t.Goal,
		Settings:   t.Settings,
		ExportDate: t.now(),
	}
	if doc.Entries == nil {
		doc.Entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return data, nil
}

// ParseImport validates an externally supplied document in full before
// anything is committed. A single invalid entry rejects the whole
// document; prior state stays untouched.
func ParseImport(raw []byte) (*ExportDocument, ImportPreview, error) {
	preview := ImportPreview{}
	if len(raw) > MaxImportBytes {
		return nil, preview, fmt.Errorf("import file exceeds %d MB limit", MaxImportBytes>>20)
	}
	var top map[string]any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, preview, fmt.Errorf("import file is not a valid JSON document: %w", err)
	}
	items, ok := top["entries"].([]any)
	if !ok {
		return nil, preview, fmt.Errorf("import document has no entries array")
	}
	goalMap, ok := top["goal"].(map[string]any)
	if !ok || !ValidateGoal(goalMap) {
		return nil, preview, fmt.Errorf("import document has an invalid goal")
	}
	settingsMap, ok := top["settings"].(map[string]any)
	if !ok || !ValidateSettings(settingsMap) {
		return nil, preview, fmt.Errorf("import document has invalid settings")
	}

	entries := make([]model.Entry, 0, len(items))
	for i, item := range items {
		m, isMap := item.(map[string]any)
		if !isMap || !ValidateEntry(m) {
			return nil, preview, fmt.Errorf("import entry %d is invalid", i)
		}
		entries = append(entries, decodeEntry(m))
	}
	SortEntries(entries)

	doc := &ExportDocument{
		Entries:  entries,
		Goal:     decodeGoal(goalMap),
		Settings: decodeSettings(settingsMap),
	}
	if exportDate, isString := top["exportDate"].(string); isString {
		preview.ExportDate = exportDate
		if parsed, err := ParseTimestamp(exportDate); err == nil {
			doc.ExportDate = parsed
		}
	}
	preview.EntryCount = len(entries)
	return doc, preview, nil
}

// CommitImport snapshots the current state into a timestamped backup,
// replaces state wholesale, persists it, and prunes old backups.
func (t *Tracker) CommitImport(doc *ExportDocument) error {
	if doc == nil {
		return fmt.Errorf("nothing to import")
	}

	now := t.now()
	backup := BackupDocument{
		Entries:    t.Entries,
		Goal:       t.Goal,
		Settings:   t.Settings,
		BackupDate: now,
	}
	if backup.Entries == nil {
		backup.Entries = []model.Entry{}
	}
	data, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("marshal pre-import backup: %w", err)
	}
	key := fmt.Sprintf("%s%d", BackupPrefix, now.UnixMilli())
	if !t.gw.SaveRaw(key, string(data)) {
		t.log.Warn("pre-import backup not saved", zap.String("key", key))
	}

	entries := make([]model.Entry, len(doc.Entries))
	copy(entries, doc.Entries)
	SortEntries(entries)

	t.Entries = entries
	t.Goal = doc.Goal
	t.Settings = doc.Settings
	t.persistEntries()
	if !t.gw.SaveGoal(t.Goal) {
		t.log.Warn("imported goal not persisted, in-memory copy kept")
	}
	if !t.gw.SaveSettings(t.Settings) {
		t.log.Warn("imported settings not persisted, in-memory copy kept")
	}
	t.pruneBackups()
	return nil
}

// pruneBackups keeps only the newest backupKeep snapshots. Keys embed
// epoch milliseconds, so descending lexicographic order is newest-first.
func (t *Tracker) pruneBackups() {
	keys, err := t.gw.Keys(BackupPrefix)
	if err != nil {
		t.log.Warn("list backups for pruning", zap.Error(err))
		return
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys[min(len(keys), backupKeep):] {
		t.gw.DeleteKey(key)
	}
}

func (t *Tracker) ListBackups() ([]BackupSummary, error) {
	keys, err := t.gw.Keys(BackupPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]BackupSummary, 0, len(keys))
	for _, key := range keys {
		summary := BackupSummary{Key: key}
		raw, ok, err := t.gw.Raw(key)
		if err != nil || !ok {
			out = append(out, summary)
			continue
		}
		var doc BackupDocument
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			summary.BackupDate = doc.BackupDate.Format(time.RFC3339)
			summary.EntryCount = len(doc.Entries)
		}
		out = append(out, summary)
	}
	return out, nil
}
