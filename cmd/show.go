package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the full record of one candidate",
	Long: `Display a formatted summary of a candidate record.

The argument can be either:
  - A candidate ID (as printed by 'scout search --json')
  - A name, matched exactly (case-insensitive) or as a substring

Example:
  scout show "Jane Doe"
  scout show 3f0c7e52-...`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	records, err := loadCandidates(cfg)
	if err != nil {
		return err
	}

	found, err := candidate.Find(records, args[0])
	if errors.Is(err, candidate.ErrNotFound) {
		return fmt.Errorf("candidate %q not found in %s", args[0], cfg.CandidatesPath)
	}
	if err != nil {
		return err
	}
	if len(found) > 1 {
		printWarn("", fmt.Sprintf("%q matches %d candidates:", args[0], len(found)))
		for _, c := range found {
			fmt.Printf("  -  %s  (%s)\n", c.Name, c.ID)
		}
		return fmt.Errorf("ambiguous candidate reference %q", args[0])
	}

	printCandidate(os.Stdout, found[0], cfg.CandidatesPath)
	return nil
}

// printCandidate displays the formatted record for one candidate.
func printCandidate(out io.Writer, c candidate.Candidate, root string) {
	fmt.Fprintf(out, "👤 Candidate: %s\n", c.Name)
	if c.Title != "" {
		fmt.Fprintf(out, "Title:      %s\n", c.Title)
	}
	if c.Location != "" {
		fmt.Fprintf(out, "Location:   %s\n", c.Location)
	}
	if c.ExperienceYears > 0 {
		fmt.Fprintf(out, "Experience: %s\n", formatYears(c.ExperienceYears))
	}
	if c.Summary != "" {
		fmt.Fprintf(out, "Summary:    %s\n", strings.ReplaceAll(strings.TrimSpace(c.Summary), "\n", " "))
	}
	if len(c.Skills) > 0 {
		fmt.Fprintln(out, "\nSkills:")
		for _, s := range c.Skills {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
	fmt.Fprintf(out, "\nID:   %s\n", c.ID)
	if c.Source != "" {
		fmt.Fprintf(out, "Path: %s\n", filepath.Join(root, filepath.FromSlash(c.Source)))
	}
}
