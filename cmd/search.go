package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/kamusis/scout-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagSearchLimit     int
	flagSearchNoHistory bool
	flagSearchMarker    string
	flagSearchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search candidates by terms, -exclusions and \"exact phrases\"",
	Long: `Filter the candidate records with a free-text query.

  scout search go austin            every term must appear
  scout search -- python -java      records mentioning java are dropped
  scout search '"staff engineer"'   the quoted phrase must appear as written

Matching is case-insensitive substring containment over name, title,
skills, location and summary. Put -- before the query when it starts
with an exclusion so it is not read as a flag.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 20, "Maximum number of results to show (0 = all)")
	searchCmd.Flags().BoolVar(&flagSearchNoHistory, "no-history", false, "Do not record the query in search history")
	searchCmd.Flags().StringVar(&flagSearchMarker, "marker", "**", "Text placed around highlighted matches (empty disables)")
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	if flagSearchLimit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", flagSearchLimit)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	records, err := loadCandidates(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	parsed := search.ParseQuery(query)
	matches := records
	if strings.TrimSpace(query) != "" {
		matches = search.FilterParsed(records, parsed)
	}

	if !flagSearchNoHistory && strings.TrimSpace(query) != "" {
		hist, closeHist, err := openHistory(cfg)
		if err != nil {
			printWarn("history", err.Error())
		} else {
			hist.Save(query)
			closeHist()
		}
	}

	total := len(matches)
	if flagSearchLimit > 0 && len(matches) > flagSearchLimit {
		matches = matches[:flagSearchLimit]
	}

	if flagSearchJSON {
		return writeSearchJSON(os.Stdout, query, parsed, total, matches)
	}
	printSearchResults(os.Stdout, query, parsed, total, matches, flagSearchMarker)
	return nil
}

// printSearchResults renders the matched records as a numbered table. total
// is the match count before --limit was applied.
func printSearchResults(out io.Writer, query string, parsed search.ParsedQuery, total int, matches []candidate.Candidate, marker string) {
	fmt.Fprintf(out, "\nscout search %q\n\n", query)
	fmt.Fprintf(out, "Results (%d found):\n", total)
	if len(matches) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, c := range matches {
		name := renderSegments(search.HighlightTerm(c.Name, parsed), marker)
		title := renderSegments(search.HighlightTerm(c.Title, parsed), marker)
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%s\t%s\n", i+1, name, title, c.Location, formatYears(c.ExperienceYears))
	}
	_ = w.Flush()

	for i, c := range matches {
		if len(c.Skills) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n  %d. %s\n", i+1, c.Name)
		fmt.Fprintf(out, "  - %s\n", strings.Join(c.Skills, ", "))
	}
	if len(matches) < total {
		fmt.Fprintf(out, "\n  ~  showing %d of %d (use --limit to see more)\n", len(matches), total)
	}
}

type searchJSON struct {
	Query      string                `json:"query"`
	Parsed     search.ParsedQuery    `json:"parsed"`
	Total      int                   `json:"total"`
	Candidates []candidate.Candidate `json:"candidates"`
}

func writeSearchJSON(out io.Writer, query string, parsed search.ParsedQuery, total int, matches []candidate.Candidate) error {
	if matches == nil {
		matches = []candidate.Candidate{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(searchJSON{Query: query, Parsed: parsed, Total: total, Candidates: matches})
}

func formatYears(y float64) string {
	if y == 0 {
		return "-"
	}
	if y == float64(int(y)) {
		return fmt.Sprintf("%dy", int(y))
	}
	return fmt.Sprintf("%.1fy", y)
}
