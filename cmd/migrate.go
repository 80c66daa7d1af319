package cmd

import (
	"log"

	"github.com/snap-point/blog-api/config"
	"github.com/spf13/cobra"
)

// migrateCmd creates the enum types and tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the user_role and post_status enum types if they are missing,
then auto-migrate the users, categories, posts, comments, post_categories
and likes tables. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db)

	if err := config.Migrate(db); err != nil {
		return err
	}

	log.Println("Database schema is up to date")
	return nil
}
