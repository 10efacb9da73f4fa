package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
	"github.com/selloa/weed-tracker/internal/store"
)

// testNow is the pinned clock for stats tests: a Wednesday afternoon.
var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "weedtrack.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := NewTracker(newTestStore(t), nil)
	tr.SetClock(func() time.Time { return testNow })
	return tr
}

func entryAt(id int64, amount float64, ts time.Time) model.Entry {
	return model.Entry{
		ID:        id,
		Amount:    amount,
		Method:    "joint",
		Timestamp: ts,
		CreatedAt: ts,
	}
}
