package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jon4hz/wishwell/internal/api"
	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
	"github.com/jon4hz/wishwell/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wishwell server",
	Long:  `Start the wishwell server, loading the bundled sample data on first boot.`,
	Example: `wishwell serve --config config.yml
wishwell serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	sched, err := scheduler.New()
	if err != nil {
		log.Fatalf("failed to create scheduler: %v", err)
	}

	// Load the sample fixtures once, iff no users exist yet.
	err = sched.AddStartupJob("bootstrap-seed", func(ctx context.Context) error {
		loaded, err := db.Seed(ctx, false)
		if err != nil {
			return err
		}
		if loaded {
			log.Info("first boot detected, sample data loaded")
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to schedule bootstrap job: %v", err)
	}
	sched.Start()

	server, err := api.New(cfg, db, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("wishwell started successfully")
	<-c
	log.Info("shutting down gracefully...")

	if err := sched.Stop(); err != nil {
		log.Error("failed to stop scheduler", "error", err)
	}
}
