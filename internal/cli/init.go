package cli

import (
	"fmt"
	"trip-course-service/internal/bootstrap"
	"trip-course-service/internal/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog schema",
	Long:  `Create the places, reviews, concentration_rates and course_cache tables if missing.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		database, err := bootstrap.OpenDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := bootstrap.InitSchema(cfg, database); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}

		printSuccess(cmd, fmt.Sprintf("Schema ready (%s)", cfg.CatalogDriver))
		return nil
	},
}
