package cli

import (
	"context"
	"fmt"
	"strconv"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/bootstrap"
	"trip-course-service/internal/config"

	"github.com/spf13/cobra"
)

var (
	placesCity  int
	placesLimit int
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "List the best rated places of a city",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if placesCity <= 0 {
			return fmt.Errorf("--city must be a positive city id")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.SeedOnStart = false

		catalog, err := bootstrap.OpenCatalog(cfg)
		if err != nil {
			return err
		}
		defer catalog.Close()

		places, err := catalog.ListPlaces(context.Background(), placesCity, placesLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			out := make([]dto.Place, 0, len(places))
			for _, p := range places {
				out = append(out, dto.NewPlace(p))
			}
			return outputJSON(cmd, out)
		}

		printSection(cmd, fmt.Sprintf("Places in city %d", placesCity))
		rows := make([][]string, 0, len(places))
		for _, p := range places {
			rows = append(rows, []string{
				strconv.Itoa(p.PlaceID),
				p.Name,
				p.Category,
				strconv.FormatFloat(p.Rating, 'f', 1, 64),
			})
		}
		printTable(cmd, []string{"ID", "Name", "Category", "Rating"}, rows)
		return nil
	},
}

func init() {
	placesCmd.Flags().IntVar(&placesCity, "city", 0, "City id")
	placesCmd.Flags().IntVar(&placesLimit, "limit", 20, "Maximum rows")
}
