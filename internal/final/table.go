package final

import (
	"errors"
	"fmt"
)

// ErrUnknownYear is returned when no final was played in the requested year
var ErrUnknownYear = errors.New("no final for year")

// Table is the read-only finals table
type Table struct {
	rows   []*Final
	byYear map[int]*Final
}

// NewTable builds a table from rows in source order.
// When a year appears twice the first row wins the index.
func NewTable(rows []*Final) *Table {
	t := &Table{
		rows:   make([]*Final, 0, len(rows)),
		byYear: make(map[int]*Final, len(rows)),
	}
	for _, r := range rows {
		f := *r
		t.rows = append(t.rows, &f)
	}
	for _, f := range t.rows {
		if _, exists := t.byYear[f.Year]; !exists {
			t.byYear[f.Year] = f
		}
	}
	return t
}

// Rows returns copies of the rows in source order
func (t *Table) Rows() []Final {
	out := make([]Final, len(t.rows))
	for i, f := range t.rows {
		out[i] = *f
	}
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Years returns the unique years in source order
func (t *Table) Years() []int {
	years := make([]int, 0, len(t.rows))
	seen := make(map[int]bool, len(t.rows))
	for _, f := range t.rows {
		if !seen[f.Year] {
			seen[f.Year] = true
			years = append(years, f.Year)
		}
	}
	return years
}

// ByYear looks up the final played in year
func (t *Table) ByYear(year int) (Final, error) {
	f, ok := t.byYear[year]
	if !ok {
		return Final{}, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	return *f, nil
}
