package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches (most recent first)",
	Long: `Show the last searches recorded by 'scout search' and the API.

At most 10 distinct queries are kept. Where they are stored is set by
history.backend in ~/.scout/scout.yaml (file, sqlite, badger or memory).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recorded searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	hist, closeHist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeHist()

	printHistory(os.Stdout, hist.List())
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	hist, closeHist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeHist()

	hist.Clear()
	printOK("", "search history cleared")
	return nil
}

func printHistory(out io.Writer, entries []string) {
	fmt.Fprintln(out, "=== Recent Searches ===")
	if len(entries) == 0 {
		fmt.Fprintln(out, "  -  no searches recorded yet")
		return
	}
	for i, q := range entries {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, q)
	}
}
