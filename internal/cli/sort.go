package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/stats"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone         SortOrder = ""
	SortByYear       SortOrder = "year"
	SortByAttendance SortOrder = "attendance"
	SortByWinner     SortOrder = "winner"
	SortByWins       SortOrder = "wins"
	SortByCountry    SortOrder = "country"
)

// sortFinals sorts finals rows in place. SortNone keeps source order.
func sortFinals(rows []final.Final, order SortOrder) error {
	switch order {
	case SortNone:
	case SortByYear:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Year < rows[j].Year
		})
	case SortByAttendance:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Attendance > rows[j].Attendance
		})
	case SortByWinner:
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Winner != rows[j].Winner {
				return strings.ToLower(rows[i].Winner) < strings.ToLower(rows[j].Winner)
			}
			// Same winner, oldest first
			return rows[i].Year < rows[j].Year
		})
	default:
		return fmt.Errorf("invalid sort for finals: %s (must be 'year', 'attendance' or 'winner')", order)
	}
	return nil
}

// sortWins sorts win counts in place. SortNone and SortByWins keep the
// table's own order, which already breaks ties by first title.
func sortWins(rows []stats.WinCount, order SortOrder) error {
	switch order {
	case SortNone, SortByWins:
	case SortByCountry:
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Country) < strings.ToLower(rows[j].Country)
		})
	default:
		return fmt.Errorf("invalid sort for wins: %s (must be 'wins' or 'country')", order)
	}
	return nil
}
