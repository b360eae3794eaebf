package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/stats"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Table names accepted by show
const (
	TableFinals = "finals"
	TableWins   = "wins"
)

// OutputResult contains data to be output. Exactly one of Finals and Wins
// is set, matching Table.
type OutputResult struct {
	Source  string           `json:"source"`
	BuiltAt time.Time        `json:"built_at"`
	Table   string           `json:"table"`
	Count   int              `json:"count"`
	Finals  []final.Final    `json:"finals,omitempty"`
	Wins    []stats.WinCount `json:"wins,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No rows found.")
		return nil
	}

	switch result.Table {
	case TableWins:
		for _, wc := range result.Wins {
			fmt.Fprintf(w, "%-16s %d\n", wc.Country, wc.Wins)
		}
		fmt.Fprintf(w, "\nTotal: %d countries\n", result.Count)
	default:
		for _, f := range result.Finals {
			fmt.Fprintf(w, "%d  %-16s %-20s %s\n", f.Year, f.Winner, f.Score, f.RunnerUp)
			if verbose {
				fmt.Fprintf(w, "      Venue: %s, %s\n", f.Venue, f.Location)
				if f.Attendance > 0 {
					fmt.Fprintf(w, "      Attendance: %d\n", f.Attendance)
				}
			}
		}
		fmt.Fprintf(w, "\nTotal: %d finals\n", result.Count)
	}

	if verbose {
		fmt.Fprintf(w, "Source: %s (fetched %s)\n", result.Source, result.BuiltAt.Format(time.RFC3339))
	}
	return nil
}
