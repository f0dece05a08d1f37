package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kamusis/scout-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagHighlightMarker string
	flagHighlightJSON   bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <text> <query>",
	Short: "Mark every case-insensitive occurrence of query inside text",
	Long: `Split text around the occurrences of query and print it with each match
wrapped in the marker. The query is treated as one literal substring.

Example:
  scout highlight "Senior Go Engineer" go
  scout highlight --json "Go and go" GO`,
	Args: cobra.ExactArgs(2),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().StringVar(&flagHighlightMarker, "marker", "**", "Text placed around highlighted matches")
	highlightCmd.Flags().BoolVar(&flagHighlightJSON, "json", false, "Print the segments as JSON")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(_ *cobra.Command, args []string) error {
	segs := search.Highlight(args[0], args[1])
	if flagHighlightJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(segs)
	}
	fmt.Println(renderSegments(segs, flagHighlightMarker))
	if !search.HasHighlight(segs) {
		printMiss("", fmt.Sprintf("no match for %q", args[1]))
	}
	return nil
}
