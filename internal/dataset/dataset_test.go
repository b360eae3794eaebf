package dataset

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
	"github.com/pfrederiksen/wc-dashboard/internal/scraper"
)

type stubFetcher struct {
	rows []*final.Final
	err  error
}

func (s *stubFetcher) FetchFinals(ctx context.Context) ([]*final.Final, error) {
	if s.err != nil {
		return nil, s.err
	}
	// fresh copies so normalization never leaks between builds
	out := make([]*final.Final, len(s.rows))
	for i, r := range s.rows {
		f := *r
		out[i] = &f
	}
	return out, nil
}

func quietBuilder(f Fetcher) *Builder {
	var buf bytes.Buffer
	return NewBuilder(f, "https://test.example.com").WithLogger(logger.New(logger.LevelError, &buf))
}

func TestBuild(t *testing.T) {
	fetcher := &stubFetcher{rows: []*final.Final{
		{Year: 1954, Winner: "West Germany", RunnerUp: "Hungary", Location: "Bern, Switzerland"},
		{Year: 1970, Winner: "Brazil", RunnerUp: "Italy", Location: "Mexico City, Mexico"},
		{Year: 1974, Winner: "West Germany", RunnerUp: "Netherlands", Location: "Munich, West Germany"},
		{Year: 2014, Winner: "Germany", RunnerUp: "Argentina", Location: "Rio de Janeiro, Brazil"},
	}}

	ds, err := quietBuilder(fetcher).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if ds.Finals.Len() != 4 {
		t.Errorf("Finals.Len() = %d, want 4", ds.Finals.Len())
	}

	f, err := ds.Finals.ByYear(1974)
	if err != nil {
		t.Fatalf("ByYear(1974) error: %v", err)
	}
	if f.Winner != "Germany" || f.Location != "Munich, Germany" {
		t.Errorf("1974 not normalized: %+v", f)
	}

	wins, err := ds.Wins.Wins("Germany")
	if err != nil {
		t.Fatalf("Wins(Germany) error: %v", err)
	}
	if wins != 3 {
		t.Errorf("Wins(Germany) = %d, want 3", wins)
	}
	if _, err := ds.Wins.Wins("West Germany"); err == nil {
		t.Error("West Germany should have been folded into Germany")
	}
	if ds.SourceURL != "https://test.example.com" {
		t.Errorf("SourceURL = %q", ds.SourceURL)
	}
}

func TestBuild_FetchError(t *testing.T) {
	wantErr := errors.New("connection refused")
	_, err := quietBuilder(&stubFetcher{err: wantErr}).Build(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("Build() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestBuild_NoRows(t *testing.T) {
	if _, err := quietBuilder(&stubFetcher{}).Build(context.Background()); err == nil {
		t.Error("Build() with no rows should fail")
	}
}

func TestBuild_FromPage(t *testing.T) {
	data, err := os.ReadFile("../scraper/testdata/finals.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer server.Close()

	s := scraper.NewWithConfig(scraper.Config{URL: server.URL, TableIndex: scraper.DefaultTableIndex})
	b := quietBuilder(s)

	first, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	second, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("second Build() error: %v", err)
	}

	// Same upstream page, same tables
	if !reflect.DeepEqual(first.Finals.Rows(), second.Finals.Rows()) {
		t.Error("finals tables differ between builds")
	}
	if !reflect.DeepEqual(first.Wins.Rows(), second.Wins.Rows()) {
		t.Error("win counts differ between builds")
	}

	expected := map[string]int{
		"Brazil":    5,
		"Germany":   4,
		"Italy":     4,
		"Argentina": 3,
		"France":    2,
		"Uruguay":   2,
		"England":   1,
		"Spain":     1,
	}
	if first.Wins.Len() != len(expected) {
		t.Errorf("Wins.Len() = %d, want %d", first.Wins.Len(), len(expected))
	}
	for country, want := range expected {
		got, err := first.Wins.Wins(country)
		if err != nil {
			t.Errorf("Wins(%s) error: %v", country, err)
			continue
		}
		if got != want {
			t.Errorf("Wins(%s) = %d, want %d", country, got, want)
		}
	}

	for _, f := range first.Finals.Rows() {
		for _, cell := range []string{f.Winner, f.RunnerUp, f.Location} {
			if cell == "West Germany" || cell == "Munich, West Germany" {
				t.Errorf("year %d still has alias %q", f.Year, cell)
			}
		}
	}
}
