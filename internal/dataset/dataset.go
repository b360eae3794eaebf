// Package dataset builds the immutable tables the dashboard serves.
//
// A Dataset is constructed once at startup by a Builder and then shared,
// read-only, by every request handler. There is no package-level state.
package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/wc-dashboard/internal/final"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
	"github.com/pfrederiksen/wc-dashboard/internal/stats"
)

// Fetcher retrieves raw finals rows from an upstream source
type Fetcher interface {
	FetchFinals(ctx context.Context) ([]*final.Final, error)
}

// Dataset holds the normalized finals table and the derived win counts
type Dataset struct {
	Finals    *final.Table
	Wins      *stats.WinCounts
	SourceURL string
	BuiltAt   time.Time
}

// New assembles a Dataset from already-normalized rows
func New(rows []*final.Final, sourceURL string) *Dataset {
	finals := final.NewTable(rows)
	return &Dataset{
		Finals:    finals,
		Wins:      stats.CountWins(finals.Rows()),
		SourceURL: sourceURL,
		BuiltAt:   time.Now().UTC(),
	}
}

// Builder fetches, normalizes and aggregates the finals data
type Builder struct {
	fetcher   Fetcher
	sourceURL string
	log       *logger.Logger
}

// NewBuilder creates a Builder reading from fetcher. sourceURL is recorded on
// the Dataset for display only.
func NewBuilder(fetcher Fetcher, sourceURL string) *Builder {
	return &Builder{
		fetcher:   fetcher,
		sourceURL: sourceURL,
		log:       logger.Default(),
	}
}

// WithLogger sets the logger used for build progress
func (b *Builder) WithLogger(log *logger.Logger) *Builder {
	b.log = log
	return b
}

// Build fetches the finals table and derives the win counts. Any failure
// is returned as is; there is no partial dataset.
func (b *Builder) Build(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	rows, err := b.fetcher.FetchFinals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching finals: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fetching finals: no rows in %s", b.sourceURL)
	}

	renamed := final.Normalize(rows)
	ds := New(rows, b.sourceURL)

	elapsed := time.Since(start)
	logger.RecordTiming("dataset.build", elapsed)
	logger.SetGauge("dataset.finals", float64(ds.Finals.Len()))
	logger.SetGauge("dataset.countries", float64(ds.Wins.Len()))

	b.log.Info("dataset built", logger.Fields{
		"source":      b.sourceURL,
		"finals":      ds.Finals.Len(),
		"countries":   ds.Wins.Len(),
		"normalized":  renamed,
		"duration_ms": elapsed.Milliseconds(),
	})

	return ds, nil
}
