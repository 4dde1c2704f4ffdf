package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/session"
	"github.com/secondhand/console/internal/domain/shared"
)

// statusView is what login and status print. The token itself is never
// printed.
type statusView struct {
	LoggedIn bool              `json:"loggedIn"`
	Admin    bool              `json:"admin"`
	Route    string            `json:"route"`
	Token    session.TokenInfo `json:"token"`
	Expired  bool              `json:"expired,omitempty"`
	Profile  *session.Profile  `json:"profile,omitempty"`
}

func (s *state) status() statusView {
	app := s.app
	info := app.Store.Inspect()
	return statusView{
		LoggedIn: app.Store.IsLoggedIn(),
		Admin:    app.Store.IsAdmin(),
		Route:    app.Router.Current().Path,
		Token:    info,
		Expired:  info.Expired(time.Now()),
		Profile:  app.Store.Profile(),
	}
}

func newLoginCommand(s *state) *cobra.Command {
	var (
		username string
		password string
		admin    bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session",
		Long: `Sign in with a username and password. The token is kept in the
configured session store so later commands run as this user.

Use --admin to sign in through the administrator endpoint.`,
		Annotations: guarded(navigation.RouteLogin),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			login := s.app.Session.Login
			if admin {
				login = s.app.Session.AdminLogin
			}
			if _, err := login(cmd.Context(), username, password); err != nil {
				return err
			}
			if _, err := s.enter(cmd.Context(), navigation.RouteDashboard); err != nil {
				return err
			}
			return s.app.Print(s.status())
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().BoolVar(&admin, "admin", false, "sign in as an administrator")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s.app.Session.Logout(cmd.Context())
			if _, _, err := s.app.Router.Navigate(navigation.RouteLogin); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in user's profile",
		Annotations: guarded(navigation.RouteProfile),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := s.app.Session.FetchProfile(cmd.Context())
			if profile == nil {
				if !s.app.Store.IsLoggedIn() {
					return shared.ErrNotLoggedIn
				}
				return errors.New("could not load the profile")
			}
			return s.app.Print(profile)
		},
	}
}

func newStatusCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session without contacting the backend",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return s.app.Print(s.status())
		},
	}
}

func newOpenCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path|name>",
		Short: "Navigate to a console page through the guard",
		Long: `Navigate to a page by path ("/orders") or by route name ("orders")
and print where the guard lets you land.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, err := s.enter(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", route.Path, navigation.Title(route))
			return nil
		},
	}
}

func newRoutesCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the console's pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME\tACCESS\tTITLE")
			for _, r := range s.app.Router.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Name, access(r), r.Title)
			}
			return w.Flush()
		},
	}
}

func access(r navigation.Route) string {
	switch {
	case r.Redirect != "":
		return "-> " + r.Redirect
	case r.RequiresAdmin:
		return "admin"
	case r.RequiresAuth:
		return "user"
	default:
		return "public"
	}
}
