package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/career-advisor/internal/observability"
	"github.com/jonathan/career-advisor/internal/recommend"
	"github.com/jonathan/career-advisor/internal/server"
	"github.com/jonathan/career-advisor/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the career chat, recommendation, catalog and CV analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := loadCatalog(cfg.CatalogDir)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer closeStore()

	replies, closeReplies, err := newReplyGenerator(ctx, cfg, metrics, logger)
	if err != nil {
		return fmt.Errorf("failed to create reply generator: %w", err)
	}
	defer closeReplies()

	composer := recommend.NewComposer(c)
	manager := session.NewManager(store, replies, composer, logger)
	engine := recommend.NewEngine(c, composer, manager)

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		SweepInterval:   cfg.Session.SweepInterval,
	}, engine, manager, metrics, logger)

	logger.Info("career advisor ready",
		zap.Int("port", cfg.Server.Port),
		zap.String("session_store", cfg.Session.Store),
		zap.Int("jobs", len(c.Jobs())))

	return srv.Start(ctx)
}
