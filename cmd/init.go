package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamusis/scout-cli/internal/config"
	"github.com/spf13/cobra"
)

// sampleCandidate is written into an empty candidates directory on first
// init so that search has something to show.
const sampleCandidate = `---
name: Ada Example
title: Senior Backend Engineer
location: Berlin, Germany
experience_years: 7
skills:
  - Go
  - PostgreSQL
  - Kubernetes
---

# Ada Example

Backend engineer focused on payment systems and distributed storage.
`

var flagInitNoSample bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.scout with a default config and candidates directory",
	Long: `Initialize scout under ~/.scout/.

Writes scout.yaml (kept if it already exists), a .env template listing the
SCOUT_* overrides, and the candidates directory. An empty candidates
directory receives one sample record unless --no-sample is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitNoSample, "no-sample", false, "Do not write a sample candidate record")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.scout directory ─────────────────────────────────────────
	scoutDir, err := config.ScoutDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(scoutDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", scoutDir, err)
	}

	// ── 2. Write scout.yaml if missing ────────────────────────────────────────
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		def, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(def); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 3. .env template ─────────────────────────────────────────────────────
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}

	// ── 4. Candidates directory ──────────────────────────────────────────────
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CandidatesPath, 0o755); err != nil {
		return fmt.Errorf("cannot create candidates directory: %w", err)
	}
	printOK("", fmt.Sprintf("Candidates directory: %s", cfg.CandidatesPath))

	if !flagInitNoSample && !dirHasContent(cfg.CandidatesPath) {
		samplePath := filepath.Join(cfg.CandidatesPath, "ada-example.md")
		if err := os.WriteFile(samplePath, []byte(sampleCandidate), 0o644); err != nil {
			return fmt.Errorf("cannot write sample candidate: %w", err)
		}
		printOK("", fmt.Sprintf("Sample candidate written: %s", samplePath))
	}

	fmt.Println("\n✓  scout init complete. Run 'scout status' to verify your environment.")
	return nil
}

// dirHasContent reports whether dir exists and contains at least one
// non-hidden entry.
func dirHasContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Name() != "" && e.Name()[0] != '.' {
			return true
		}
	}
	return false
}
