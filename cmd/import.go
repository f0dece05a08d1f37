package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/scout-cli/internal/config"
	"github.com/kamusis/scout-cli/internal/importer"
	"github.com/spf13/cobra"
)

var flagImportLabel string

var importCmd = &cobra.Command{
	Use:   "import <dir>...",
	Short: "Copy candidate files from other directories into the candidates path",
	Long: `Copy Markdown, YAML and JSON candidate files into the configured
candidates directory.

Identical files are skipped. A file that differs from one already present
is kept next to it as <name>.conflict-<label>.<ext> so nothing is lost.
Files that do not parse or fail validation are reported and left behind.

Example:
  scout import ~/Downloads/referrals
  scout import --label agency ./export`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagImportLabel, "label", "", "Label used in conflict file names (default: source directory name)")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CandidatesPath, 0o755); err != nil {
		return fmt.Errorf("cannot create candidates directory: %w", err)
	}

	fmt.Println("=== Import Candidates ===")

	var totalConflicts []importer.ConflictPair
	for _, arg := range args {
		src, err := config.ExpandPath(arg)
		if err != nil {
			return err
		}
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			printMiss(arg, "directory not found")
			continue
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			printSkip(arg, "not a directory")
			continue
		}

		label := flagImportLabel
		if label == "" {
			label = filepath.Base(filepath.Clean(src))
		}
		result, err := importer.ImportDir(src, cfg.CandidatesPath, label, cfg.Excludes)
		if err != nil {
			return fmt.Errorf("import [%s]: %w", arg, err)
		}
		printOK(arg, fmt.Sprintf("%d file(s) imported, %d skipped, %d conflict(s), %d ignored",
			result.Imported, result.Skipped, len(result.Conflicts), result.Ignored))
		for _, inv := range result.Invalid {
			printErr(arg, fmt.Sprintf("%s: %v", inv.Path, inv.Err))
		}
		totalConflicts = append(totalConflicts, result.Conflicts...)
	}

	if len(totalConflicts) > 0 {
		fmt.Printf("\n⚠  %d conflict(s) detected during import.\n", len(totalConflicts))
		fmt.Printf("   All versions have been preserved in %s.\n", cfg.CandidatesPath)
		fmt.Println("   Please review and resolve the following files manually:")
		for _, c := range totalConflicts {
			fmt.Printf("     - %s  ← conflicts with %s\n", c.Conflict, c.Original)
		}
	}
	return nil
}
