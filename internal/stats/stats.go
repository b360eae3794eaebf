// Package stats derives per-country tallies from the finals table.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
)

// ErrUnknownCountry is returned when a country has no recorded title
var ErrUnknownCountry = errors.New("country has no recorded wins")

// WinCount is one row of the win-counts table
type WinCount struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
}

// WinCounts is the read-only win-counts table
type WinCounts struct {
	rows   []WinCount
	byName map[string]int
}

// CountWins groups finals by winner and counts titles. Rows are ordered by
// wins descending; ties keep the order in which the country first won.
func CountWins(finals []final.Final) *WinCounts {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, f := range finals {
		if _, seen := counts[f.Winner]; !seen {
			order = append(order, f.Winner)
		}
		counts[f.Winner]++
	}

	rows := make([]WinCount, 0, len(order))
	for _, country := range order {
		rows = append(rows, WinCount{Country: country, Wins: counts[country]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Wins > rows[j].Wins
	})

	return &WinCounts{rows: rows, byName: counts}
}

// Rows returns a copy of the table rows
func (w *WinCounts) Rows() []WinCount {
	out := make([]WinCount, len(w.rows))
	copy(out, w.rows)
	return out
}

// Countries returns the country names in table order
func (w *WinCounts) Countries() []string {
	names := make([]string, len(w.rows))
	for i, r := range w.rows {
		names[i] = r.Country
	}
	return names
}

// Len returns the number of countries with at least one title
func (w *WinCounts) Len() int {
	return len(w.rows)
}

// Wins looks up the number of titles won by country
func (w *WinCounts) Wins(country string) (int, error) {
	n, ok := w.byName[country]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}
	return n, nil
}
