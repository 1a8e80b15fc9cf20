package apiclient

import (
	"context"

	"github.com/rs/zerolog"
)

// LoginRoute is where the user is sent once the session has been wiped.
const LoginRoute = "/login"

// Navigator moves the user to another screen. A CLI prints a hint, a UI switches views.
type Navigator interface {
	Navigate(ctx context.Context, route string) error
}

type NavigatorFunc func(ctx context.Context, route string) error

func (f NavigatorFunc) Navigate(ctx context.Context, route string) error {
	return f(ctx, route)
}

// LogNavigator only records the navigation. Used when no navigator is configured.
func LogNavigator(log zerolog.Logger) Navigator {
	return NavigatorFunc(func(_ context.Context, route string) error {
		log.Info().Str("route", route).Msg("navigate")
		return nil
	})
}
