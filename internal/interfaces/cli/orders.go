package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/trade"
	"github.com/secondhand/console/internal/domain/navigation"
)

func newOrdersCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "orders",
		Short:       "Manage orders",
		Annotations: guarded(navigation.RouteOrders),
	}
	cmd.AddCommand(
		newOrdersListCommand(s),
		newOrdersGetCommand(s),
		newOrdersCancelCommand(s),
		newOrdersShipCommand(s),
	)
	return cmd
}

func newOrdersListCommand(s *state) *cobra.Command {
	var (
		page   pageFlags
		status int
	)
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List orders",
		Annotations: guarded(navigation.RouteOrders),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := s.app.Trade.List(cmd.Context(), trade.ListQuery{
				Status:    optInt(cmd, "status", status),
				PageQuery: page.query(cmd),
			})
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(result)
		},
	}
	page.bind(cmd)
	cmd.Flags().IntVar(&status, "status", 0, "order status")
	return cmd
}

func newOrdersGetCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "get <order-id>",
		Short:       "Show one order",
		Annotations: guarded(navigation.RouteOrders),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			order, err := s.app.Trade.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(order)
		},
	}
}

func newOrdersCancelCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "cancel <order-id>",
		Short:       "Cancel an order",
		Annotations: guarded(navigation.RouteOrders),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Trade.Cancel(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %d canceled\n", id)
			return nil
		},
	}
}

func newOrdersShipCommand(s *state) *cobra.Command {
	var req trade.ShipRequest
	cmd := &cobra.Command{
		Use:         "ship <order-id>",
		Short:       "Mark an order as shipped",
		Annotations: guarded(navigation.RouteOrders),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Trade.Ship(cmd.Context(), id, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %d shipped\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ExpressCompany, "company", "", "express company")
	cmd.Flags().StringVar(&req.ExpressNo, "tracking", "", "tracking number")
	return cmd
}
