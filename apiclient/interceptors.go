package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/tcms-client/token"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDInterceptor tags each request with a fresh id unless the caller set one.
func RequestIDInterceptor() RequestInterceptor {
	return func(_ context.Context, req *http.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return nil
	}
}

// BearerInterceptor attaches the stored access token, if any. It runs on every request,
// including login and refresh.
func BearerInterceptor(state SessionState) RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		accessToken, err := state.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("[BearerInterceptor] read access token: %w", err)
		}
		if accessToken != "" {
			token.Bearer(accessToken).SetAuthHeader(req)
		}
		return nil
	}
}

// UnauthorizedInterceptor wipes the session and sends the user to the login route when the
// backend answers 401. The request is not retried.
func UnauthorizedInterceptor(state SessionState, nav Navigator, log zerolog.Logger) ResponseInterceptor {
	return func(ctx context.Context, resp *http.Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}

		log.Warn().
			Str("path", resp.Request.URL.Path).
			Msg("unauthorized response, clearing session")

		if err := state.Clear(ctx); err != nil {
			log.Error().Err(err).Msg("failed to clear session after 401")
		}
		if err := nav.Navigate(ctx, LoginRoute); err != nil {
			log.Error().Err(err).Str("route", LoginRoute).Msg("failed to navigate after 401")
		}
		return nil
	}
}
