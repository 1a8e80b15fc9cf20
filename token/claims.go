package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/tcms-client/internal/utils"
)

// ErrMalformedToken is matched by every DecodeError.
var ErrMalformedToken = errors.New("malformed access token")

// DecodeError describes why an access token's claims could not be read.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedToken, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedToken, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedToken
}

// Claims are the fields the backend adds to its access tokens.
// They are read without verifying the signature and must only drive what the client
// shows. The backend remains the authority on every access decision.
type Claims struct {
	Role       string    // "admin", "district_manager", "training_officer", "data_entry", "instructor"
	District   string    // "" when the user is not bound to a district
	CenterID   string    // Decimal center id, "" when the user has no center
	CenterName string    // "" when the user has no center
	UserID     string    // Backend user id
	Email      string    // Login email
	ExpiresAt  time.Time // Zero when the token has no exp claim
}

// DecodeClaims reads the payload segment of a three-segment JWT. The header and signature
// are not looked at. Missing optional claims decode as "".
func DecodeClaims(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, &DecodeError{Reason: "empty token"}
	}
	parts := strings.Split(rawToken, ".")
	if len(parts) != 3 {
		return Claims{}, &DecodeError{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}

	payload, err := jwtlib.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return Claims{}, &DecodeError{Reason: "unreadable payload", Err: err}
	}
	mapClaims := jwtlib.MapClaims{}
	if err := json.Unmarshal(payload, &mapClaims); err != nil {
		return Claims{}, &DecodeError{Reason: "unreadable payload", Err: err}
	}

	claims := Claims{
		Role:       utils.ToString(mapClaims["role"]),
		District:   utils.ToString(mapClaims["district"]),
		CenterID:   utils.ToString(mapClaims["center_id"]),
		CenterName: utils.ToString(mapClaims["center_name"]),
		UserID:     utils.ToString(mapClaims["user_id"]),
		Email:      utils.ToString(mapClaims["email"]),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Expired reports whether the exp claim is in the past. Tokens without exp never expire
// here; the backend is still free to reject them.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
