package cli

import (
	"fmt"
	"trip-course-service/internal/bootstrap"
	"trip-course-service/internal/config"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load places from a JSON seed file",
	Long: `Create the catalog schema if needed, then upsert every place in the seed file
together with its reviews and concentration rates.

Defaults to SEED_PATH when --file is not given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path := seedFile
		if path == "" {
			path = cfg.SeedPath
		}

		database, err := bootstrap.OpenDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := bootstrap.InitSchema(cfg, database); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		if err := bootstrap.Seed(cfg, database, path); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		printSuccess(cmd, fmt.Sprintf("Seeded %s catalog from %s", cfg.CatalogDriver, path))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file to load")
}
