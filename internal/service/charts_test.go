package service

import (
	"testing"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
)

func TestLast48hSeriesAscendingWithinWindow(t *testing.T) {
	entries := []model.Entry{
		entryAt(1, 0.5, testNow.Add(-1*time.Hour)),
		entryAt(2, 0.3, testNow.Add(-40*time.Hour)),
		entryAt(3, 1.0, testNow.Add(-50*time.Hour)), // outside the window
	}
	points := Last48hSeries(entries, testNow)

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Timestamp.Before(points[1].Timestamp) {
		t.Fatalf("expected ascending order")
	}
	if points[0].Amount != 0.3 {
		t.Fatalf("expected oldest point first, got %g", points[0].Amount)
	}
}

func TestLast48hSeriesEmptyStaysEmpty(t *testing.T) {
	points := Last48hSeries(nil, testNow)
	if len(points) != 0 {
		t.Fatalf("expected no synthetic points, got %d", len(points))
	}
}

func TestTimeOfDayHistogramBucketsByLocalHour(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	entries := []model.Entry{
		entryAt(1, 0.5, day.Add(2*time.Hour)),  // night
		entryAt(2, 0.5, day.Add(8*time.Hour)),  // morning
		entryAt(3, 0.5, day.Add(14*time.Hour)), // afternoon
		entryAt(4, 0.5, day.Add(20*time.Hour)), // evening
		entryAt(5, 0.5, day.Add(21*time.Hour)), // evening
	}
	buckets := TimeOfDayHistogram(entries)

	if len(buckets) != 4 {
		t.Fatalf("expected 4 fixed buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "Night (12-6am)" || buckets[3].Label != "Evening (6pm-12am)" {
		t.Fatalf("unexpected labels: %v", buckets)
	}
	counts := []int{buckets[0].Count, buckets[1].Count, buckets[2].Count, buckets[3].Count}
	want := []int{1, 1, 1, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("bucket %d: expected %d, got %d", i, want[i], counts[i])
		}
	}
}

func TestMethodHistogramSortedAndPlaceholder(t *testing.T) {
	empty := MethodHistogram(nil)
	if len(empty) != 1 || empty[0].Label != "No data yet" || empty[0].Count != 1 {
		t.Fatalf("unexpected placeholder: %v", empty)
	}

	entries := []model.Entry{
		{ID: 1, Amount: 0.5, Method: "bong", Timestamp: testNow},
		{ID: 2, Amount: 0.5, Method: "joint", Timestamp: testNow},
		{ID: 3, Amount: 0.5, Method: "joint", Timestamp: testNow},
		{ID: 4, Amount: 0.5, Method: "vape", Timestamp: testNow},
	}
	buckets := MethodHistogram(entries)
	if buckets[0].Label != "joint" || buckets[0].Count != 2 {
		t.Fatalf("expected joint first with count 2, got %v", buckets)
	}
	// Equal counts fall back to label order.
	if buckets[1].Label != "bong" || buckets[2].Label != "vape" {
		t.Fatalf("expected label tiebreak, got %v", buckets)
	}
}
