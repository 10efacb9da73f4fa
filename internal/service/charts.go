package service

import (
	"sort"
	"time"

	"github.com/selloa/weed-tracker/internal/model"
)

type ScatterPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Amount    float64   `json:"amount"`
}

type HistogramBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Last48hSeries returns (timestamp, amount) points within the rolling
// 48-hour window ending at now, ascending. An empty window stays empty;
// no synthetic placeholder point is added.
func Last48hSeries(entries []model.Entry, now time.Time) []ScatterPoint {
	start := now.Add(-48 * time.Hour)
	points := make([]ScatterPoint, 0)
	for _, e := range entries {
		if inWindow(e.Timestamp, start, now) {
			points = append(points, ScatterPoint{Timestamp: e.Timestamp, Amount: e.Amount})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points
}

var timeOfDayLabels = []string{
	"Night (12-6am)",
	"Morning (6am-12pm)",
	"Afternoon (12-6pm)",
	"Evening (6pm-12am)",
}

// TimeOfDayHistogram buckets the full entry set by local hour of day into
// four fixed six-hour buckets.
func TimeOfDayHistogram(entries []model.Entry) []HistogramBucket {
	buckets := make([]HistogramBucket, len(timeOfDayLabels))
	for i, label := range timeOfDayLabels {
		buckets[i].Label = label
	}
	for _, e := range entries {
		hour := e.Timestamp.In(time.Local).Hour()
		buckets[hour/6].Count++
	}
	return buckets
}

// MethodHistogram counts entries per method over the full entry set. The
// "No data yet" placeholder bucket is a display convention for an empty
// set, not a real count.
func MethodHistogram(entries []model.Entry) []HistogramBucket {
	if len(entries) == 0 {
		return []HistogramBucket{{Label: "No data yet", Count: 1}}
	}
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Method]++
	}
	buckets := make([]HistogramBucket, 0, len(counts))
	for method, count := range counts {
		buckets = append(buckets, HistogramBucket{Label: method, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}
