package cli

import (
	"trip-course-service/internal/config"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
)

// rootCmd is the root command for dbtool.
var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Catalog maintenance and offline course planning",
	Long: `dbtool prepares the place catalog (schema and seed data) and can run the
course planner against it without starting the HTTP server.

The catalog is selected with CATALOG_DRIVER (sqlite, postgres or memory).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !config.LoadDotEnv() {
			printDim(cmd, "No .env file found (using environment variables)")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(placesCmd)
	rootCmd.AddCommand(planCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
