// Package cli implements the command-line interface for wc-dashboard.
//
// The cli package provides the Cobra-based CLI with two commands: serve, which
// builds the finals dataset once and serves the interactive dashboard, and show,
// which prints the finals or win-count table as text or JSON. Both load settings
// through the config package and coordinate the scraper, dataset and server
// packages.
package cli
