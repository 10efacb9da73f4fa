package service

import (
	"encoding/json"
	"fmt"

	"github.com/selloa/weed-tracker/internal/model"
)

type DoctorReport struct {
	TotalRecords    int  `json:"total_records"`
	InvalidRecords  int  `json:"invalid_records"`
	DuplicateIDs    int  `json:"duplicate_ids"`
	SortViolations  int  `json:"sort_violations"`
	CorruptDocument bool `json:"corrupt_document"`
	FixedRecords    int  `json:"fixed_records,omitempty"`
}

func (r DoctorReport) Clean() bool {
	return !r.CorruptDocument && r.InvalidRecords == 0 && r.DuplicateIDs == 0 && r.SortViolations == 0
}

// RunDoctor inspects the stored entries document as written, bypassing
// the load-time filtering, so it sees exactly what a hand edit or a buggy
// writer left behind. With fix it rewrites the cleaned, sorted list;
// duplicate ids are reported but never merged.
func (t *Tracker) RunDoctor(fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	raw, ok, err := t.gw.Raw(KeyEntries)
	if err != nil {
		return report, fmt.Errorf("read entries document: %w", err)
	}
	if !ok {
		return report, nil
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		report.CorruptDocument = true
		if fix {
			t.Entries = make([]model.Entry, 0)
			t.persistEntries()
		}
		return report, nil
	}
	report.TotalRecords = len(items)

	valid := make([]model.Entry, 0, len(items))
	seen := map[int64]bool{}
	for _, item := range items {
		m, isMap := item.(map[string]any)
		if !isMap || !ValidateEntry(m) {
			report.InvalidRecords++
			continue
		}
		e := decodeEntry(m)
		if seen[e.ID] {
			report.DuplicateIDs++
		}
		seen[e.ID] = true
		valid = append(valid, e)
	}
	for i := 0; i+1 < len(valid); i++ {
		if valid[i].Timestamp.Before(valid[i+1].Timestamp) {
			report.SortViolations++
		}
	}

	if fix && (report.InvalidRecords > 0 || report.SortViolations > 0) {
		SortEntries(valid)
		t.Entries = valid
		t.persistEntries()
		report.FixedRecords = report.InvalidRecords + report.SortViolations
	}
	return report, nil
}
