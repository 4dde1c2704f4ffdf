package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/secondhand/console/internal/application/catalog"
	"github.com/secondhand/console/internal/application/feedback"
	"github.com/secondhand/console/internal/application/identity"
	"github.com/secondhand/console/internal/application/marketing"
	"github.com/secondhand/console/internal/application/report"
	"github.com/secondhand/console/internal/application/trade"
	"github.com/secondhand/console/internal/domain/navigation"
	"github.com/secondhand/console/internal/domain/session"
	"github.com/secondhand/console/internal/infrastructure/config"
	"github.com/secondhand/console/internal/infrastructure/httpclient"
	"github.com/secondhand/console/internal/infrastructure/imageurl"
	"github.com/secondhand/console/internal/infrastructure/logger"
	"github.com/secondhand/console/internal/infrastructure/storage"
)

// App is the wired console: one session store, one router and one request
// pipeline shared by every feature client.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Slot    storage.Slot
	Store   *session.Store
	Session *session.Manager
	Router  *navigation.Router
	HTTP    *httpclient.Client

	Identity  *identity.Client
	Catalog   *catalog.Client
	Trade     *trade.Client
	Marketing *marketing.Client
	Feedback  *feedback.Client
	Report    *report.Client

	Images *imageurl.Rewriter

	registry    *prometheus.Registry
	metricsFile string
	tracer      *sdktrace.TracerProvider

	out    io.Writer
	errOut io.Writer
}

// AppOptions carries what the command line adds to the config.
type AppOptions struct {
	Verbose     bool
	MetricsFile string
	Out         io.Writer
	Err         io.Writer
}

// NewApp wires the console from cfg.
func NewApp(ctx context.Context, cfg *config.Config, opts AppOptions) (*App, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	log, err := newLogger(cfg.Log, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &App{
		Config:      cfg,
		Logger:      log,
		Images:      imageurl.New(cfg.Backend.AssetBaseURL),
		metricsFile: opts.MetricsFile,
		tracer:      sdktrace.NewTracerProvider(),
		out:         opts.Out,
		errOut:      opts.Err,
	}
	if app.metricsFile == "" {
		app.metricsFile = cfg.Metrics.Textfile
	}

	app.Slot, err = storage.Open(ctx, cfg, log.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	app.Store, err = session.NewStore(ctx, app.Slot,
		session.WithAdminRole(cfg.Session.AdminRole),
		session.WithLogger(log.Named("session")),
	)
	if err != nil {
		app.Slot.Close()
		return nil, err
	}

	app.Router, err = navigation.NewRouter(navigation.DefaultRoutes(), app.Store, log.Named("navigation"))
	if err != nil {
		app.Slot.Close()
		return nil, err
	}

	clientOpts := []httpclient.Option{
		httpclient.WithTokenSource(app.Store),
		httpclient.WithAuthExpiredHandler(app.onAuthExpired),
		httpclient.WithNotifier(httpclient.NotifierFunc(app.notify)),
		httpclient.WithLogger(log.Named("http")),
		httpclient.WithTracerProvider(app.tracer),
	}
	if cfg.Metrics.Enabled || app.metricsFile != "" {
		app.registry = prometheus.NewRegistry()
		metrics, err := httpclient.NewMetrics(app.registry)
		if err != nil {
			app.Slot.Close()
			return nil, err
		}
		clientOpts = append(clientOpts, httpclient.WithMetrics(metrics))
	}

	app.HTTP, err = httpclient.New(httpclient.Config{
		BaseURL:   cfg.Backend.BaseURL,
		BasePath:  cfg.Backend.BasePath,
		Timeout:   cfg.Backend.Timeout,
		UserAgent: cfg.Backend.UserAgent,
	}, clientOpts...)
	if err != nil {
		app.Slot.Close()
		return nil, err
	}

	app.Identity = identity.NewClient(app.HTTP)
	app.Catalog = catalog.NewClient(app.HTTP)
	app.Trade = trade.NewClient(app.HTTP)
	app.Marketing = marketing.NewClient(app.HTTP)
	app.Feedback = feedback.NewClient(app.HTTP)
	app.Report = report.NewClient(app.HTTP)
	app.Session = session.NewManager(app.Store, app.Identity, log.Named("session"))

	log.Debug("console ready",
		zap.String("backend", cfg.Backend.BaseURL+cfg.Backend.BasePath),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("logged_in", app.Store.IsLoggedIn()),
	)
	return app, nil
}

func newLogger(cfg config.LogConfig, opts AppOptions) (*zap.Logger, error) {
	logCfg := logger.DefaultConfig()
	if opts.Verbose {
		logCfg = logger.VerboseConfig()
	} else if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}
	logCfg.Format = cfg.Format
	logCfg.Output = cfg.Output
	if logCfg.Output == "stderr" {
		return logger.NewWithWriter(logCfg, opts.Err), nil
	}
	return logger.New(logCfg)
}

// onAuthExpired is the pipeline's one-time global reaction to a 401.
func (a *App) onAuthExpired(ctx context.Context) {
	a.Store.ClearSession(ctx)
	a.Router.RedirectToLogin()
}

// notify prints a pipeline failure for the operator.
func (a *App) notify(_ context.Context, message string) {
	fmt.Fprintf(a.errOut, "! %s\n", message)
}

// SessionExpired reports whether a call in this run hit a 401.
func (a *App) SessionExpired() bool {
	return a.Router.ForcedRedirects() > 0
}

// Print writes v to stdout as indented JSON.
func (a *App) Print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintWithImages writes v after rewriting the image URLs in it.
func (a *App) PrintWithImages(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return err
	}
	return a.Print(a.Images.RewriteTree(tree))
}

// Close flushes metrics and releases the session store.
func (a *App) Close() error {
	var errs []error
	if a.registry != nil && a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics: %w", err))
		}
	}
	if err := a.tracer.Shutdown(context.Background()); err != nil {
		errs = append(errs, err)
	}
	if err := a.Slot.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing session store: %w", err))
	}
	_ = logger.Sync(a.Logger)
	return errors.Join(errs...)
}
