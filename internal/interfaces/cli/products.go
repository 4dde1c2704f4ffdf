package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/catalog"
	"github.com/secondhand/console/internal/domain/navigation"
)

func newProductsCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "products",
		Short:       "Manage product listings",
		Annotations: guarded(navigation.RouteProducts),
	}
	cmd.AddCommand(
		newProductsListCommand(s),
		newProductsGetCommand(s),
		newProductsDeleteCommand(s),
		newProductsReportsCommand(s),
	)
	return cmd
}

func newProductsListCommand(s *state) *cobra.Command {
	var (
		page     pageFlags
		keyword  string
		category int64
		status   int
	)
	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List products",
		Annotations: guarded(navigation.RouteProducts),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := catalog.ListQuery{
				Keyword:   keyword,
				Status:    optInt(cmd, "status", status),
				PageQuery: page.query(cmd),
			}
			if cmd.Flags().Changed("category") {
				q.CategoryID = &category
			}
			result, err := s.app.Catalog.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(result)
		},
	}
	page.bind(cmd)
	cmd.Flags().StringVar(&keyword, "keyword", "", "search keyword")
	cmd.Flags().Int64Var(&category, "category", 0, "category id")
	cmd.Flags().IntVar(&status, "status", 0, "listing status")
	return cmd
}

func newProductsGetCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "get <product-id>",
		Short:       "Show one product",
		Annotations: guarded(navigation.RouteProducts),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := s.app.Catalog.Detail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.PrintWithImages(product)
		},
	}
}

func newProductsDeleteCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "delete <product-id>",
		Short:       "Delete a product",
		Annotations: guarded(navigation.RouteProducts),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Catalog.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "product %d deleted\n", id)
			return nil
		},
	}
}

func newProductsReportsCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "reports <product-id>",
		Short:       "Show reports filed against a product",
		Annotations: guarded(navigation.RouteProducts),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			reports, err := s.app.Catalog.Reports(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.app.Print(reports)
		},
	}
}
