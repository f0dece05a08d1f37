package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/kamusis/scout-cli/internal/config"
	"github.com/kamusis/scout-cli/internal/history"
	"github.com/kamusis/scout-cli/internal/kv"
	"github.com/spf13/cobra"
)

var flagDebug bool

var rootCmd = &cobra.Command{
	Use:          "scout",
	Short:        "Scout CLI: search candidate records from the terminal",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Scout searches a directory of candidate records (Markdown, YAML or JSON)
with include terms, -exclude terms and "exact phrases", and keeps a short
history of recent searches under ~/.scout/.`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging on stderr")
}

// setupLogging installs the default slog logger. --debug wins over
// SCOUT_LOG_LEVEL.
func setupLogging(_ *cobra.Command, _ []string) error {
	lvl, err := config.LogLevel()
	if err != nil {
		printWarn("", err.Error())
	}
	if flagDebug {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
	return nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'scout init' first.", err)
	}
	return cfg, nil
}

// loadCandidates reads every record under the configured candidates path.
func loadCandidates(cfg *config.Config) ([]candidate.Candidate, error) {
	records, err := candidate.Discover(cfg.CandidatesPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load candidates from %s: %w", cfg.CandidatesPath, err)
	}
	return records, nil
}

// openHistory opens the configured history backend. The returned close
// function must be called once the store is no longer needed.
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, nil, err
	}
	backend, err := kv.Open(cfg.History.Backend, path, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s history at %s: %w", cfg.History.Backend, path, err)
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			slog.Debug("closing history backend", "backend", cfg.History.Backend, "error", err)
		}
	}
	return history.New(backend, history.WithLogger(slog.Default())), closeFn, nil
}
