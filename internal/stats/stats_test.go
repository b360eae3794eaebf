package stats

import (
	"errors"
	"testing"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
)

func finals() []final.Final {
	return []final.Final{
		{Year: 1930, Winner: "Uruguay", RunnerUp: "Argentina"},
		{Year: 1934, Winner: "Italy", RunnerUp: "Czechoslovakia"},
		{Year: 1938, Winner: "Italy", RunnerUp: "Hungary"},
		{Year: 1950, Winner: "Uruguay", RunnerUp: "Brazil"},
		{Year: 1954, Winner: "Germany", RunnerUp: "Hungary"},
		{Year: 1958, Winner: "Brazil", RunnerUp: "Sweden"},
		{Year: 1962, Winner: "Brazil", RunnerUp: "Czechoslovakia"},
		{Year: 1970, Winner: "Brazil", RunnerUp: "Italy"},
		{Year: 1994, Winner: "Brazil", RunnerUp: "Italy"},
		{Year: 2002, Winner: "Brazil", RunnerUp: "Germany"},
	}
}

func TestCountWins(t *testing.T) {
	rows := finals()
	wc := CountWins(rows)

	// every country's count equals the number of rows it won
	for _, r := range wc.Rows() {
		n := 0
		for _, f := range rows {
			if f.Winner == r.Country {
				n++
			}
		}
		if r.Wins != n {
			t.Errorf("%s: Wins = %d, want %d", r.Country, r.Wins, n)
		}
	}

	if wc.Len() != 4 {
		t.Errorf("Len() = %d, want 4", wc.Len())
	}
}

func TestCountWins_Order(t *testing.T) {
	wc := CountWins(finals())

	want := []string{"Brazil", "Uruguay", "Italy", "Germany"}
	got := wc.Countries()
	if len(got) != len(want) {
		t.Fatalf("Countries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Countries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWinCounts_Wins(t *testing.T) {
	wc := CountWins(finals())

	n, err := wc.Wins("Brazil")
	if err != nil {
		t.Fatalf("Wins(Brazil) error: %v", err)
	}
	if n != 5 {
		t.Errorf("Wins(Brazil) = %d, want 5", n)
	}

	if _, err := wc.Wins("Sweden"); !errors.Is(err, ErrUnknownCountry) {
		t.Errorf("Wins(Sweden) error = %v, want ErrUnknownCountry", err)
	}
}

func TestCountWins_Empty(t *testing.T) {
	wc := CountWins(nil)

	if wc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", wc.Len())
	}
	if len(wc.Countries()) != 0 {
		t.Errorf("Countries() = %v, want empty", wc.Countries())
	}
}
