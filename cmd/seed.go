package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
)

var seedCmdFlags struct {
	Force bool
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled sample data",
	Long:  `Load the bundled sample data into the database. By default this only runs against an empty database; use --force to wipe and reload.`,
	Run:   seed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedCmdFlags.Force, "force", false, "Replace all existing data with the sample fixtures")

	rootCmd.AddCommand(seedCmd)
}

func seed(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	loaded, err := db.Seed(cmd.Context(), seedCmdFlags.Force)
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if !loaded {
		log.Info("database already has users, nothing to do (use --force to reload)")
		return
	}
	log.Info("sample data loaded successfully")
}
