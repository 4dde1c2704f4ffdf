package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/marketing"
	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/shared"
)

func newPromotionsCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "promotions",
		Short:       "Manage promotions",
		Annotations: guarded(navigation.RoutePromotions),
	}
	cmd.AddCommand(
		newPromotionsListCommand(s),
		newPromotionsGetCommand(s),
		newPromotionsStatusCommand(s),
		newPromotionsDeleteCommand(s),
		newPromotionsActiveCommand(s),
	)
	return cmd
}

func newPromotionsListCommand(s *state) *cobra.Command {
	var (
		page   pageFlags
		q      marketing.ListQuery
		kind   int
		status int
	)
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List promotions",
		Annotations: guarded(navigation.RoutePromotions),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q.PromotionType = optInt(cmd, "type", kind)
			q.Status = optInt(cmd, "status", status)
			q.PageQuery = page.query(cmd)
			result, err := s.app.Marketing.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(result)
		},
	}
	page.bind(cmd)
	cmd.Flags().StringVar(&q.Title, "title", "", "title filter")
	cmd.Flags().IntVar(&kind, "type", 0, "promotion type")
	cmd.Flags().IntVar(&status, "status", 0, "0 offline, 1 online")
	cmd.Flags().StringVar(&q.StartTimeBegin, "start-from", "", "earliest start time")
	cmd.Flags().StringVar(&q.StartTimeEnd, "start-to", "", "latest start time")
	cmd.Flags().StringVar(&q.EndTimeBegin, "end-from", "", "earliest end time")
	cmd.Flags().StringVar(&q.EndTimeEnd, "end-to", "", "latest end time")
	return cmd
}

func newPromotionsGetCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "get <promotion-id>",
		Short:       "Show one promotion",
		Annotations: guarded(navigation.RoutePromotions),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			promotion, err := s.app.Marketing.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(promotion)
		},
	}
}

func newPromotionsStatusCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "status <promotion-id> <online|offline>",
		Short:       "Take a promotion online or offline",
		Annotations: guarded(navigation.RoutePromotions),
		Args:        cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var status int
			switch args[1] {
			case "online", "1":
				status = marketing.StatusOnline
			case "offline", "0":
				status = marketing.StatusOffline
			default:
				return fmt.Errorf("%w: status must be online or offline", shared.ErrInvalidInput)
			}
			ok, err := s.app.Marketing.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			return s.app.Print(ok)
		},
	}
}

func newPromotionsDeleteCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "delete <promotion-id>",
		Short:       "Delete a promotion",
		Annotations: guarded(navigation.RoutePromotions),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := s.app.Marketing.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.Print(ok)
		},
	}
}

func newPromotionsActiveCommand(s *state) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:         "active",
		Short:       "List promotions currently running",
		Annotations: guarded(navigation.RoutePromotions),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			promotions, err := s.app.Marketing.Active(cmd.Context(), optInt(cmd, "limit", limit))
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(promotions)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 8, "maximum number of promotions")
	return cmd
}
