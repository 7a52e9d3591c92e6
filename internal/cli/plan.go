package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/bootstrap"
	"trip-course-service/internal/config"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	planCities     []int
	planStart      string
	planEnd        string
	planKeywords   []string
	planPacing     string
	planMustVisit  []int
	planCompanions string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate course options against the catalog",
	Long: `Run the course planner directly against the configured catalog and print
every generated option day by day.`,
	Example: `  dbtool plan --cities 1 --start 2026-05-01 --end 2026-05-03 --keywords nature,food --pacing packed`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := planRequestFromFlags()
		if err != nil {
			return err
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

		plan, err := services.NewPlanner(catalog).Generate(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd, dto.NewGenerateCoursesResponse(plan))
		}

		printPlan(cmd, plan)
		return nil
	},
}

func init() {
	planCmd.Flags().IntSliceVar(&planCities, "cities", nil, "City ids, visited in rotation")
	planCmd.Flags().StringVar(&planStart, "start", "", "First day (YYYY-MM-DD)")
	planCmd.Flags().StringVar(&planEnd, "end", "", "Last day (YYYY-MM-DD), defaults to --start")
	planCmd.Flags().StringSliceVar(&planKeywords, "keywords", nil, "Interest keywords")
	planCmd.Flags().StringVar(&planPacing, "pacing", "normal", "leisurely, normal or packed")
	planCmd.Flags().IntSliceVar(&planMustVisit, "must-visit", nil, "Place ids that must open a day")
	planCmd.Flags().StringVar(&planCompanions, "companions", "", "Travel companions")
}

func planRequestFromFlags() (domain.TripRequest, error) {
	if len(planCities) == 0 {
		return domain.TripRequest{}, fmt.Errorf("--cities is required")
	}

	start, err := time.Parse(dto.DateLayout, planStart)
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("--start must be YYYY-MM-DD")
	}
	end := start
	if planEnd != "" {
		end, err = time.Parse(dto.DateLayout, planEnd)
		if err != nil {
			return domain.TripRequest{}, fmt.Errorf("--end must be YYYY-MM-DD")
		}
	}
	if end.Before(start) {
		return domain.TripRequest{}, fmt.Errorf("--end is before --start")
	}

	keywords := make([]string, 0, len(planKeywords))
	for _, k := range planKeywords {
		keywords = append(keywords, domain.NormalizeKeyword(k))
	}

	return domain.TripRequest{
		CityIDs:      planCities,
		StartDate:    start,
		EndDate:      end,
		Keywords:     keywords,
		Companions:   planCompanions,
		Pacing:       domain.ParsePacing(planPacing),
		MustVisitIDs: planMustVisit,
	}, nil
}

func printPlan(cmd *cobra.Command, plan *domain.TripPlan) {
	printSection(cmd, plan.Title)

	if len(plan.Courses) == 0 {
		printLabelValue(cmd, "Courses", "none")
		return
	}

	for _, c := range plan.Courses {
		printSubsection(cmd, c.ThemeTitle)
		for _, d := range c.Days {
			printLabelValue(cmd, "Day "+strconv.Itoa(d.Day), d.Date.Format(dto.DateLayout))

			rows := make([][]string, 0, len(d.Stops))
			for _, s := range d.Stops {
				rows = append(rows, []string{
					strconv.Itoa(s.Order),
					s.ArriveAt.Format(dto.ClockLayout) + "-" + s.DepartAt.Format(dto.ClockLayout),
					string(s.Kind),
					s.Place.Name,
					s.Place.Category,
				})
			}
			printTable(cmd, []string{"#", "Time", "Type", "Place", "Category"}, rows)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
}
