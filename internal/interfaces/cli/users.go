package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/identity"
	"github.com/secondhand/console/internal/domain/navigation"
)

func newUsersCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "users",
		Short:       "Manage user accounts",
		Annotations: guarded(navigation.RouteUserManagement),
	}
	cmd.AddCommand(
		newUsersRoleCommand(s),
		newUsersBanCommand(s),
		newUsersUnbanCommand(s),
	)
	return cmd
}

func newUsersRoleCommand(s *state) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:         "role <user-id>",
		Short:       "Assign a role to a user",
		Annotations: guarded(navigation.RouteUserManagement),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := identity.RoleRequest{TargetUserID: id, Role: role}
			if err := s.app.Identity.UpdateUserRole(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d is now %s\n", id, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role to assign")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newUsersBanCommand(s *state) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:         "ban <user-id>",
		Short:       "Ban a user",
		Annotations: guarded(navigation.RouteUserManagement),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := identity.BanRequest{TargetUserID: id, BanReason: reason}
			if err := s.app.Identity.BanUser(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d banned\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason shown to the user")
	return cmd
}

func newUsersUnbanCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "unban <user-id>",
		Short:       "Lift a ban",
		Annotations: guarded(navigation.RouteUserManagement),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := s.app.Identity.UnbanUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d unbanned\n", id)
			return nil
		},
	}
}
