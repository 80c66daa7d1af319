package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog API - users, posts, comments and categories over PostgreSQL",
	Long: `Blog API serves the users resource over HTTP and owns the PostgreSQL
schema behind posts, comments, categories and likes.

Configuration comes from the environment (or a .env file):
  DATABASE_URL   PostgreSQL connection string (required)
  PORT           HTTP port (default 8080)
  GIN_MODE       debug | release | test
  DB_LOG_LEVEL   silent | error | warn | info (default warn)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
