package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamusis/scout-cli/internal/api"
	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search, suggestions, highlighting and history over HTTP",
	Long: `Start the JSON API on server.addr from ~/.scout/scout.yaml.

Routes:
  GET    /healthz
  GET    /api/v1/candidates/search?q=&limit=&highlight=&record=
  GET    /api/v1/candidates/:id
  POST   /api/v1/candidates/reload
  GET    /api/v1/suggestions?prefix=&category=
  POST   /api/v1/highlight           {"text": "...", "query": "..."}
  GET    /api/v1/history
  POST   /api/v1/history             {"query": "..."}
  DELETE /api/v1/history`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	hist, closeHist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeHist()

	logger := slog.Default()
	a, err := api.New(func() ([]candidate.Candidate, error) {
		return loadCandidates(cfg)
	}, hist, logger)
	if err != nil {
		return err
	}

	if !flagDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, a, cfg.Server.MaxBodyBytes)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		printInfo("", fmt.Sprintf("scout serve listening on http://%s (candidates: %s)", addr, cfg.CandidatesPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	printInfo("", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
