package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/kamusis/scout-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagSuggestPrefix   string
	flagSuggestCategory string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show ranked autocomplete suggestions drawn from the candidate pool",
	Long: `List the most common skills, locations and titles in the candidate
records, followed by the experience bands. Entries seen more than three
times are marked as trending.

Example:
  scout suggest
  scout suggest --prefix py --category skill`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&flagSuggestPrefix, "prefix", "", "Only show suggestions containing this text")
	suggestCmd.Flags().StringVar(&flagSuggestCategory, "category", "", "Only show one category: skill, location, title or experience")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, _ []string) error {
	category, err := search.ParseCategory(flagSuggestCategory)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	records, err := loadCandidates(cfg)
	if err != nil {
		return err
	}

	suggestions := search.FilterSuggestions(search.GenerateSuggestions(records), flagSuggestPrefix, category)
	if len(suggestions) == 0 {
		printMiss("", "no suggestions")
		return nil
	}
	printSuggestions(os.Stdout, suggestions)
	return nil
}

var categoryHeadings = map[search.Category]string{
	search.CategorySkill:      "Skills",
	search.CategoryLocation:   "Locations",
	search.CategoryTitle:      "Titles",
	search.CategoryExperience: "Experience",
}

// printSuggestions groups suggestions under a heading per category, keeping
// the generator's order within and across groups.
func printSuggestions(out io.Writer, suggestions []search.Suggestion) {
	var w *tabwriter.Writer
	var current search.Category
	for _, s := range suggestions {
		if w == nil || s.Category != current {
			if w != nil {
				_ = w.Flush()
			}
			current = s.Category
			heading, ok := categoryHeadings[current]
			if !ok {
				heading = string(current)
			}
			fmt.Fprintf(out, "\n● %s:\n", heading)
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		}
		trend := ""
		if s.Trending {
			trend = "↑ trending"
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\n", s.Text, s.Count, trend)
	}
	if w != nil {
		_ = w.Flush()
	}
}
