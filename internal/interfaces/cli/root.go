// Package cli is the console's command line: one cobra command per
// operator action, each bound to the route it stands for.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/config"
	"github.com/secondhand/console/internal/infrastructure/logger"
)

// routeAnnotation names the route a command stands for. Commands without
// it are not guarded.
const routeAnnotation = "route"

// MessageSessionExpired is printed after a run in which the backend
// rejected the session.
const MessageSessionExpired = "session expired, please log in again"

type state struct {
	configPath  string
	verbose     bool
	metricsFile string

	out    io.Writer
	errOut io.Writer
	app    *App
}

// Execute runs the console with args and releases everything it opened.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s := &state{out: stdout, errOut: stderr}
	root := newRootCommand(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if s.app != nil {
		if s.app.SessionExpired() {
			fmt.Fprintln(stderr, MessageSessionExpired)
		}
		if closeErr := s.app.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}
	return err
}

func newRootCommand(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "Administration console for the second-hand marketplace",
		Long: `console drives the second-hand marketplace backend from the terminal.
It keeps the login session between runs and guards every admin command
the same way the web console guards its pages: commands that need a
session send you to login, commands that need an administrator send you
back to the dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.preRun,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "config file (default is ./config.toml or $HOME/.console/config.toml)")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&s.metricsFile, "metrics-file", "", "write request metrics to this file on exit")

	root.AddCommand(
		newLoginCommand(s),
		newLogoutCommand(s),
		newWhoamiCommand(s),
		newStatusCommand(s),
		newOpenCommand(s),
		newRoutesCommand(s),
		newAccountCommand(s),
		newProductsCommand(s),
		newOrdersCommand(s),
		newUsersCommand(s),
		newPromotionsCommand(s),
		newFeedbackCommand(s),
		newAnalyticsCommand(s),
	)
	return root
}

// preRun builds the App and runs the navigation guard for the command's
// route.
func (s *state) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	s.app, err = NewApp(cmd.Context(), cfg, AppOptions{
		Verbose:     s.verbose,
		MetricsFile: s.metricsFile,
		Out:         s.out,
		Err:         s.errOut,
	})
	if err != nil {
		return err
	}

	route, ok := cmd.Annotations[routeAnnotation]
	if !ok {
		return nil
	}
	if _, err = s.enter(cmd.Context(), route); err != nil {
		return err
	}
	if profile := s.app.Store.Profile(); profile != nil {
		cmd.SetContext(logger.WithUsername(cmd.Context(), profile.Username))
	}
	return nil
}

// enter navigates to target and turns a redirect into an error.
func (s *state) enter(ctx context.Context, target string) (navigation.Route, error) {
	app := s.app
	requested, err := app.Router.Resolve(target)
	if err != nil {
		return navigation.Route{}, err
	}
	// The profile is not persisted, so an admin check after a restart
	// needs it fetched first.
	if requested.RequiresAdmin && app.Store.IsLoggedIn() && app.Store.Profile() == nil {
		app.Session.FetchProfile(ctx)
	}

	landed, decision, err := app.Router.Navigate(target)
	if err != nil {
		return navigation.Route{}, err
	}
	if decision.Allowed() {
		return landed, nil
	}

	app.Logger.Debug("command refused",
		zap.String("route", requested.Name),
		zap.String("outcome", decision.Outcome.String()),
	)
	fmt.Fprintf(s.errOut, "redirected to %s (%s)\n", landed.Path, navigation.Title(landed))
	if decision.Outcome == navigation.RedirectLogin {
		return navigation.Route{}, shared.ErrNotLoggedIn
	}
	return navigation.Route{}, shared.ErrForbidden
}

func guarded(route string) map[string]string {
	return map[string]string{routeAnnotation: route}
}
