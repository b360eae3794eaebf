package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/wc-dashboard/internal/config"
	"github.com/pfrederiksen/wc-dashboard/internal/dataset"
	"github.com/pfrederiksen/wc-dashboard/internal/logger"
	"github.com/pfrederiksen/wc-dashboard/internal/scraper"
	"github.com/pfrederiksen/wc-dashboard/internal/server"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagSourceURL string
	flagVerbose   bool
	flagPort      string
	flagFormat    string
	flagSort      string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wc-dashboard",
		Short: "Explore FIFA World Cup final results",
		Long: `A dashboard for the history of FIFA World Cup finals.
Scrapes the list of finals once at startup, then serves an interactive map of
winners and runners-up with a per-country title count.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flagSourceURL, config.FlagSourceURL, "", "Page to scrape the finals table from")
	cmd.PersistentFlags().BoolVar(&flagVerbose, config.FlagVerbose, false, "Enable verbose logging")

	cmd.AddCommand(newServeCmd(), newShowCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the dataset and serve the dashboard",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&flagPort, config.FlagPort, "", "HTTP port (default 8054)")
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "show [finals|wins]",
		Short:     "Print the finals or win-count table",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{TableFinals, TableWins},
		RunE:      runShow,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort order: year, attendance or winner for finals; wins or country for wins")
	return cmd
}

// loadConfig layers the config file, environment and flags, then installs
// the default logger at the configured level.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return config.Config{}, fmt.Errorf("reading flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	return cfg, nil
}

func buildDataset(ctx context.Context, cfg config.Config) (*dataset.Dataset, error) {
	sc := scraper.NewWithConfig(cfg.Scraper())
	logger.Debug("fetching finals", logger.Fields{"url": sc.URL(), "table_index": cfg.TableIndex})

	ds, err := dataset.NewBuilder(sc, sc.URL()).WithLogger(logger.Default()).Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("building dataset: %w", err)
	}
	return ds, nil
}

// runServe builds the dataset and serves until SIGINT or SIGTERM
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := buildDataset(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, ds, logger.Default())
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logger.Info("dashboard ready", logger.Fields{"addr": cfg.Addr(), "source": ds.SourceURL})
	return srv.Run(ctx)
}

// runShow builds the dataset and prints one of its tables
func runShow(cmd *cobra.Command, args []string) error {
	table := TableFinals
	if len(args) == 1 {
		table = args[0]
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	order := SortOrder(strings.ToLower(strings.TrimSpace(flagSort)))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := buildDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result := &OutputResult{
		Source:  ds.SourceURL,
		BuiltAt: ds.BuiltAt,
		Table:   table,
	}

	switch table {
	case TableWins:
		result.Wins = ds.Wins.Rows()
		if err := sortWins(result.Wins, order); err != nil {
			return err
		}
		result.Count = len(result.Wins)
	default:
		result.Finals = ds.Finals.Rows()
		if err := sortFinals(result.Finals, order); err != nil {
			return err
		}
		result.Count = len(result.Finals)
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the exit code. Failures
// are logged at ERROR level on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	logger.SetDefault(logger.New(logger.LevelInfo, stderr))

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", logger.Fields{"args": strings.Join(args, " ")}, err)
		return ExitError
	}
	return ExitSuccess
}
