package logger

import (
	"sync"
	"time"
)

// Stats holds named gauges and timing summaries. Timings are folded into
// running totals, so memory does not grow with the number of samples.
// All methods are safe for concurrent use.
type Stats struct {
	mu      sync.Mutex
	gauges  map[string]float64
	timings map[string]*timing
}

type timing struct {
	count    int
	total    time.Duration
	min, max time.Duration
	last     time.Duration
}

// TimingSummary describes every sample recorded under one name
type TimingSummary struct {
	Count   int    `json:"count"`
	Total   string `json:"total"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
	Last    string `json:"last"`
}

// Snapshot is a point-in-time copy of a Stats
type Snapshot struct {
	Gauges  map[string]float64       `json:"gauges"`
	Timings map[string]TimingSummary `json:"timings"`
}

var defaultStats = NewStats()

// NewStats creates an empty Stats
func NewStats() *Stats {
	return &Stats{
		gauges:  make(map[string]float64),
		timings: make(map[string]*timing),
	}
}

// SetGauge overwrites the gauge called name
func (s *Stats) SetGauge(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gauges[name] = value
}

// RecordTiming adds one sample to the timing called name
func (s *Stats) RecordTiming(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timings[name]
	if !ok {
		t = &timing{min: d, max: d}
		s.timings[name] = t
	}
	t.count++
	t.total += d
	t.last = d
	if d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
}

// Snapshot copies the current values
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Gauges:  make(map[string]float64, len(s.gauges)),
		Timings: make(map[string]TimingSummary, len(s.timings)),
	}
	for name, v := range s.gauges {
		snap.Gauges[name] = v
	}
	for name, t := range s.timings {
		snap.Timings[name] = TimingSummary{
			Count:   t.count,
			Total:   t.total.String(),
			Average: (t.total / time.Duration(t.count)).String(),
			Min:     t.min.String(),
			Max:     t.max.String(),
			Last:    t.last.String(),
		}
	}
	return snap
}

// SetGauge sets a gauge on the default Stats
func SetGauge(name string, value float64) {
	defaultStats.SetGauge(name, value)
}

// RecordTiming records a timing on the default Stats
func RecordTiming(name string, d time.Duration) {
	defaultStats.RecordTiming(name, d)
}

// StatsSnapshot returns a snapshot of the default Stats
func StatsSnapshot() Snapshot {
	return defaultStats.Snapshot()
}
