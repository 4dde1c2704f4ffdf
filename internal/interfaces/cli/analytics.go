package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/report"
	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/shared"
)

func newAnalyticsCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "analytics",
		Short:       "Query marketplace analytics",
		Annotations: guarded(navigation.RouteAnalytics),
	}
	cmd.AddCommand(
		newAnalyticsSummaryCommand(s),
		newAnalyticsTrendCommand(s),
		newAnalyticsBreakdownCommand(s),
		newAnalyticsHotCommand(s),
		newAnalyticsCustomCommand(s),
	)
	return cmd
}

func newAnalyticsSummaryCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "summary",
		Short:       "Show the dashboard summary",
		Annotations: guarded(navigation.RouteAnalytics),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := s.app.Report.Summary(cmd.Context())
			if err != nil {
				return err
			}
			return s.app.Print(data)
		},
	}
}

func newAnalyticsTrendCommand(s *state) *cobra.Command {
	var days int
	names := make([]string, 0, len(report.Trends()))
	for _, t := range report.Trends() {
		names = append(names, string(t))
	}
	cmd := &cobra.Command{
		Use:         "trend <kind>",
		Short:       "Show a day-windowed series",
		Long:        "Show a day-windowed series. Kinds: " + strings.Join(names, ", ") + ".",
		Annotations: guarded(navigation.RouteAnalytics),
		Args:        cobra.ExactArgs(1),
		ValidArgs:   names,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := s.app.Report.Trend(cmd.Context(), report.Trend(args[0]), days)
			if err != nil {
				return err
			}
			return s.app.Print(data)
		},
	}
	cmd.Flags().IntVar(&days, "days", report.DefaultTrendDays, "window size in days")
	return cmd
}

func newAnalyticsBreakdownCommand(s *state) *cobra.Command {
	names := make([]string, 0, len(report.Breakdowns()))
	for _, b := range report.Breakdowns() {
		names = append(names, string(b))
	}
	return &cobra.Command{
		Use:         "breakdown <kind>",
		Short:       "Show a distribution",
		Long:        "Show a distribution. Kinds: " + strings.Join(names, ", ") + ".",
		Annotations: guarded(navigation.RouteAnalytics),
		Args:        cobra.ExactArgs(1),
		ValidArgs:   names,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := s.app.Report.Breakdown(cmd.Context(), report.Breakdown(args[0]))
			if err != nil {
				return err
			}
			return s.app.Print(data)
		},
	}
}

func newAnalyticsHotCommand(s *state) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:         "hot",
		Short:       "Show the most viewed products",
		Annotations: guarded(navigation.RouteAnalytics),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := s.app.Report.HotProducts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(data)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", report.DefaultHotLimit, "number of products")
	return cmd
}

func newAnalyticsCustomCommand(s *state) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:         "custom",
		Short:       "Analyse an inclusive date range",
		Annotations: guarded(navigation.RouteAnalytics),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := time.Parse(report.CustomDateLayout, from)
			if err != nil {
				return fmt.Errorf("%w: --from must look like %s", shared.ErrInvalidInput, report.CustomDateLayout)
			}
			end, err := time.Parse(report.CustomDateLayout, to)
			if err != nil {
				return fmt.Errorf("%w: --to must look like %s", shared.ErrInvalidInput, report.CustomDateLayout)
			}
			if end.Before(start) {
				return fmt.Errorf("%w: --to is before --from", shared.ErrInvalidInput)
			}
			data, err := s.app.Report.Custom(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			return s.app.Print(data)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
