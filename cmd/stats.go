package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jon4hz/wishwell/internal/config"
	"github.com/jon4hz/wishwell/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display the number of users, wishlists and wishes in the database.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		users, err := db.CountUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		wishlists, err := db.CountWishlists(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count wishlists: %w", err)
		}
		wishes, err := db.CountWishes(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count wishes: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users:     %s\n", humanize.Comma(users))
		fmt.Printf("Wishlists: %s\n", humanize.Comma(wishlists))
		fmt.Printf("Wishes:    %s\n", humanize.Comma(wishes))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
