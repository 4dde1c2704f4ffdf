package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/application/identity"
	"github.com/secondhand/console/internal/domain/navigation"
)

func newAccountCommand(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your own account",
	}
	cmd.AddCommand(
		newAccountRegisterCommand(s),
		newAccountUpdateCommand(s),
		newAccountPasswordCommand(s),
		newAccountAddressCommand(s),
		newAccountRoleCommand(s),
	)
	return cmd
}

func newAccountRegisterCommand(s *state) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account",
		Annotations: guarded(navigation.RouteRegister),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.app.Identity.Register(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account %s registered\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAccountUpdateCommand(s *state) *cobra.Command {
	var phone, email, avatar string
	cmd := &cobra.Command{
		Use:         "update",
		Short:       "Change contact details",
		Annotations: guarded(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req identity.UpdateInfoRequest
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if cmd.Flags().Changed("avatar") {
				req.Avatar = &avatar
			}
			if err := s.app.Identity.UpdateUserInfo(cmd.Context(), req); err != nil {
				return err
			}
			profile := s.app.Session.FetchProfile(cmd.Context())
			if profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "profile updated")
				return nil
			}
			return s.app.Print(profile)
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	return cmd
}

func newAccountPasswordCommand(s *state) *cobra.Command {
	var req identity.PasswordRequest
	cmd := &cobra.Command{
		Use:         "password",
		Short:       "Change your password",
		Annotations: guarded(navigation.RoutePassword),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.NewPassword
			}
			if err := s.app.Identity.UpdatePassword(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.OldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "new password again (defaults to --new)")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

func newAccountAddressCommand(s *state) *cobra.Command {
	var req identity.AddressRequest
	cmd := &cobra.Command{
		Use:         "address",
		Short:       "Add a delivery address",
		Annotations: guarded(navigation.RouteAddress),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := s.app.Identity.AddUserAddress(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "address added")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Consignee, "consignee", "", "recipient name")
	cmd.Flags().StringVar(&req.Region, "region", "", "province, city and district")
	cmd.Flags().StringVar(&req.Detail, "detail", "", "street address")
	cmd.Flags().StringVar(&req.ContactPhone, "phone", "", "recipient phone")
	cmd.Flags().BoolVar(&req.IsDefault, "default", false, "make this the default address")
	return cmd
}

func newAccountRoleCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "role",
		Short:       "Show the roles the backend grants you",
		Annotations: guarded(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := s.app.Identity.GetUserRole(cmd.Context())
			if err != nil {
				return err
			}
			return s.app.Print(role)
		},
	}
}
