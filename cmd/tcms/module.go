package main

import (
	"context"
	"fmt"

	"github.com/jrsteele09/tcms-client/access"
	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/approvals"
	"github.com/jrsteele09/tcms-client/attendance"
	"github.com/jrsteele09/tcms-client/auth"
	"github.com/jrsteele09/tcms-client/centers"
	"github.com/jrsteele09/tcms-client/courses"
	"github.com/jrsteele09/tcms-client/internal/config"
	"github.com/jrsteele09/tcms-client/internal/logging"
	"github.com/jrsteele09/tcms-client/internal/telemetry"
	"github.com/jrsteele09/tcms-client/overview"
	"github.com/jrsteele09/tcms-client/reports"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/session/filestore"
	"github.com/jrsteele09/tcms-client/session/memstore"
	"github.com/jrsteele09/tcms-client/session/redisstore"
	"github.com/jrsteele09/tcms-client/students"
	"github.com/jrsteele09/tcms-client/users"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		newConfig,
		newLogger,
		newSessionStore,
		newSessionManager,
		newNavigator,
		newAPIClient,
		newAuthService,
		newChecker,
		newAttendanceAPI,
		users.NewAPI,
		centers.NewAPI,
		courses.NewAPI,
		approvals.NewAPI,
		students.NewAPI,
		reports.NewAPI,
		overview.NewAPI,
		newCLI,
	),
	fx.Invoke(registerTelemetry),
)

func newConfig(opts globalOptions) (config.Config, error) {
	return config.Load(opts.ConfigPath)
}

func newLogger(cfg config.Config) zerolog.Logger {
	return logging.New(cfg.GetLogLevel(), cfg.GetEnv())
}

func registerTelemetry(lc fx.Lifecycle, cfg config.Config, log zerolog.Logger) {
	var shutdown telemetry.ShutdownFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			shutdown = telemetry.Setup(ctx, cfg.GetAppName(), cfg, log)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
}

func newSessionStore(lc fx.Lifecycle, cfg config.Config) (session.Store, error) {
	switch cfg.GetSessionStore() {
	case config.StoreMemory:
		return memstore.New(), nil
	case config.StoreFile:
		store, err := filestore.New(cfg.GetSessionFile(), filestore.WithPassphrase(cfg.GetSessionPassphrase()))
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreRedis:
		settings := cfg.GetRedis()
		rdb := redis.NewClient(&redis.Options{
			Addr:     settings.Addr,
			Password: settings.Password,
			DB:       settings.DB,
		})
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return rdb.Close() },
		})
		return redisstore.New(rdb, settings.Prefix), nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.GetSessionStore())
}

// newSessionManager relays changes from shared stores for as long as the app runs.
func newSessionManager(lc fx.Lifecycle, store session.Store, log zerolog.Logger) *session.Manager {
	m := session.NewManager(store, session.WithLogger(log))
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := m.Run(runCtx); err != nil {
					log.Warn().Err(err).Msg("session watch stopped")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return m
}

// newNavigator stands in for the browser redirect: it tells the user to log in again.
func newNavigator(opts globalOptions) apiclient.Navigator {
	return apiclient.NavigatorFunc(func(_ context.Context, route string) error {
		if route == apiclient.LoginRoute {
			fmt.Fprintln(opts.ErrOut, "session expired: run `tcms login`")
		}
		return nil
	})
}

func newAPIClient(cfg config.Config, sessions *session.Manager, nav apiclient.Navigator, log zerolog.Logger) (apiclient.Doer, error) {
	client, err := apiclient.New(sessions,
		apiclient.WithBaseURL(cfg.GetBaseURL()),
		apiclient.WithNavigator(nav),
		apiclient.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newAuthService(client apiclient.Doer, sessions *session.Manager, log zerolog.Logger) (*auth.Service, error) {
	return auth.NewService(client, sessions, auth.WithLogger(log))
}

func newChecker(sessions *session.Manager, log zerolog.Logger) *access.Checker {
	return access.NewChecker(sessions, log)
}

func newAttendanceAPI(client apiclient.Doer, cfg config.Config) *attendance.API {
	return attendance.NewAPI(client, attendance.WithReportTimeout(cfg.GetReportTimeout()))
}
