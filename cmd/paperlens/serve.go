package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperlens/paperlens/internal/api"
	"github.com/paperlens/paperlens/internal/config"
	"github.com/paperlens/paperlens/internal/engine"
	"github.com/paperlens/paperlens/internal/pipeline"
	"github.com/paperlens/paperlens/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP service",
	Long: `Run the paperlens HTTP service: uploads are queued, analyzed by a
worker pool, and cached in a local SQLite database keyed by content
hash. Configuration comes from the environment (or a .env file).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening document cache: %w", err)
	}
	defer db.Close()

	lexicon := engine.NewLexicon()
	if cfg.LexiconPath != "" {
		lf, err := os.Open(cfg.LexiconPath)
		if err != nil {
			return fmt.Errorf("opening lexicon: %w", err)
		}
		if err := lexicon.ExtendFromYAML(lf); err != nil {
			lf.Close()
			return fmt.Errorf("loading lexicon: %w", err)
		}
		lf.Close()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	orch := pipeline.NewOrchestrator(cfg, db, engine.Options{
		HeadingMaxLen:    cfg.HeadingMaxLen,
		Lexicon:          lexicon,
		SummarySentences: cfg.SummarySentences,
	}, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting paperlens", "port", cfg.Port, "db", cfg.DBPath)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
