package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/internal/utils"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/token"
	"github.com/jrsteele09/tcms-client/users"
	"github.com/rs/zerolog"
)

const (
	tokenPath        = "/api/token/"
	tokenRefreshPath = "/api/token/refresh/"
)

// Service moves the session between logged out and logged in. It is the only writer of
// session fields apart from the client's 401 handling.
type Service struct {
	client   apiclient.Doer
	sessions *session.Manager
	users    *users.API
	log      zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(client apiclient.Doer, sessions *session.Manager, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] client is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewService] session manager is required")
	}

	s := &Service{
		client:   client,
		sessions: sessions,
		users:    users.NewAPI(client),
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login exchanges credentials for a token pair, stores the tokens together with the claims
// read from the access token, then stores the user's name from their profile.
// A malformed access token leaves the session untouched. A failed profile fetch clears it.
func (s *Service) Login(ctx context.Context, email, password string) (*token.Pair, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, fmt.Errorf("[Login] %w", err)
	}

	var pair token.Pair
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Body:   token.Credentials{Email: email, Password: password},
	}
	if err := s.client.Do(ctx, req, &pair); err != nil {
		return nil, fmt.Errorf("[Login] %w", err)
	}

	claims, err := token.DecodeClaims(pair.Access)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("login returned an unreadable access token")
		return nil, fmt.Errorf("[Login] %w", err)
	}

	err = s.sessions.Put(ctx, map[session.Key]string{
		session.KeyAccessToken:  pair.Access,
		session.KeyRefreshToken: pair.Refresh,
		session.KeyRole:         claims.Role,
		session.KeyDistrict:     claims.District,
		session.KeyCenterID:     claims.CenterID,
		session.KeyCenterName:   claims.CenterName,
	})
	if err != nil {
		s.clear(ctx)
		return nil, fmt.Errorf("[Login] store tokens: %w", err)
	}

	profile, err := s.users.Me(ctx)
	if err != nil {
		s.clear(ctx)
		return nil, fmt.Errorf("[Login] %w: %w", ProfileFetchErr, err)
	}

	err = s.sessions.Put(ctx, map[session.Key]string{
		session.KeyFirstName: profile.FirstName,
		session.KeyLastName:  profile.LastName,
	})
	if err != nil {
		s.clear(ctx)
		return nil, fmt.Errorf("[Login] store profile: %w", err)
	}

	s.log.Info().
		Str("email", email).
		Str("role", claims.Role).
		Str("district", claims.District).
		Msg("logged in")
	return &pair, nil
}

// Logout clears every session field. Nothing is sent to the backend.
func (s *Service) Logout(ctx context.Context) {
	s.clear(ctx)
	s.log.Info().Msg("logged out")
}

// Refresh exchanges the stored refresh token for a new access token and overwrites only the
// access token. A rejected refresh token answers 401, which ends the session.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	refresh, err := s.sessions.Get(ctx, session.KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("[Refresh] %w", err)
	}

	var out token.Refreshed
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   tokenRefreshPath,
		Body:   token.RefreshRequest{Refresh: utils.PtrOrNil(refresh)},
	}
	if err := s.client.Do(ctx, req, &out); err != nil {
		return "", fmt.Errorf("[Refresh] %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("[Refresh] %w", MissingAccessTokenErr)
	}

	if err := s.sessions.Set(ctx, session.KeyAccessToken, out.Access); err != nil {
		return "", fmt.Errorf("[Refresh] store access token: %w", err)
	}
	s.log.Debug().Msg("access token refreshed")
	return out.Access, nil
}

// CurrentUser fetches the profile of the logged in user.
func (s *Service) CurrentUser(ctx context.Context) (*users.User, error) {
	return s.users.Me(ctx)
}

// CheckAccountStatus asks the backend whether the logged in account is still active.
func (s *Service) CheckAccountStatus(ctx context.Context) (*users.AccountStatus, error) {
	return s.users.AccountStatus(ctx)
}

func (s *Service) clear(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session")
	}
}
