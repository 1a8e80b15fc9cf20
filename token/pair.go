package token

import (
	"golang.org/x/oauth2"
)

// Pair is the response of POST /api/token/.
type Pair struct {
	Access  string `json:"access"`  // Short-lived JWT sent as the bearer token
	Refresh string `json:"refresh"` // Exchanged at /api/token/refresh/ for a new access token
}

// Refreshed is the response of POST /api/token/refresh/.
type Refreshed struct {
	Access string `json:"access"`
}

// Credentials is the body of POST /api/token/.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /api/token/refresh/. A nil Refresh is sent as null.
type RefreshRequest struct {
	Refresh *string `json:"refresh"`
}

// Bearer wraps an access token for use with Authorization headers.
func Bearer(accessToken string) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
}

// OAuth2Token converts the pair into an oauth2.Token. Expiry is read from the access
// token's exp claim when it can be decoded.
func (p Pair) OAuth2Token() *oauth2.Token {
	t := Bearer(p.Access)
	t.RefreshToken = p.Refresh
	if claims, err := DecodeClaims(p.Access); err == nil {
		t.Expiry = claims.ExpiresAt
	}
	return t
}
