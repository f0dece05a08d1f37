package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/kamusis/scout-cli/internal/config"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the config, candidate records and history storage",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusEnvKeys are the overrides reported by status when set.
var statusEnvKeys = []string{
	"SCOUT_CANDIDATES_PATH",
	"SCOUT_HISTORY_BACKEND",
	"SCOUT_HISTORY_PATH",
	"SCOUT_SERVER_ADDR",
	"SCOUT_LOG_LEVEL",
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("=== Config ===")
	printOK("", fmt.Sprintf("Config: %s", cfgPath))
	var overridden []string
	for _, key := range statusEnvKeys {
		v, err := config.GetConfigValue(key)
		if err != nil {
			printWarn(".env", err.Error())
			break
		}
		if v != "" {
			overridden = append(overridden, fmt.Sprintf("%s=%s", key, v))
		}
	}
	sort.Strings(overridden)
	for _, o := range overridden {
		printInfo("override", o)
	}

	var problems int

	printSection("Candidates")
	if _, err := os.Stat(cfg.CandidatesPath); os.IsNotExist(err) {
		printMiss("", fmt.Sprintf("%s does not exist (run: scout init)", cfg.CandidatesPath))
	} else if records, invalid, err := candidate.Scan(cfg.CandidatesPath); err != nil {
		printErr("", err.Error())
		problems++
	} else {
		printOK("", fmt.Sprintf("%d candidate(s) in %s", len(records), cfg.CandidatesPath))
		for _, inv := range invalid {
			printWarn("skipped", inv.Err.Error())
		}
	}

	printSection("History")
	historyPath, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	hist, closeHist, err := openHistory(cfg)
	if err != nil {
		printErr(cfg.History.Backend, err.Error())
		problems++
	} else {
		printOK(cfg.History.Backend, fmt.Sprintf("%d recent search(es)  (%s)", len(hist.List()), historyPath))
		closeHist()
	}

	printSection("Server")
	printInfo("", fmt.Sprintf("scout serve listens on %s", cfg.Server.Addr))

	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
