package token_test

import (
	"encoding/base64"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/tcms-client/token"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeClaimsReadsBackendFields(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := mint(t, jwtlib.MapClaims{
		"role":        "admin",
		"district":    "Colombo",
		"center_id":   12,
		"center_name": "Colombo Central",
		"user_id":     4,
		"email":       "jane@example.com",
		"exp":         exp.Unix(),
	})

	claims, err := token.DecodeClaims(raw)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "Colombo", claims.District)
	require.Equal(t, "12", claims.CenterID)
	require.Equal(t, "Colombo Central", claims.CenterName)
	require.Equal(t, "4", claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.True(t, claims.ExpiresAt.Equal(exp))
	require.False(t, claims.Expired(time.Now()))
	require.True(t, claims.Expired(exp.Add(time.Second)))
}

func TestDecodeClaimsMissingOptionalFieldsAreEmpty(t *testing.T) {
	raw := mint(t, jwtlib.MapClaims{"role": "instructor", "center_id": nil})

	claims, err := token.DecodeClaims(raw)
	require.NoError(t, err)
	require.Equal(t, "instructor", claims.Role)
	require.Empty(t, claims.District)
	require.Empty(t, claims.CenterID)
	require.Empty(t, claims.CenterName)
	require.True(t, claims.ExpiresAt.IsZero())
	require.False(t, claims.Expired(time.Now()))
}

func TestDecodeClaimsIgnoresSignature(t *testing.T) {
	raw := mint(t, jwtlib.MapClaims{"role": "data_entry"})
	tampered := raw[:len(raw)-4] + "AAAA"

	claims, err := token.DecodeClaims(tampered)
	require.NoError(t, err)
	require.Equal(t, "data_entry", claims.Role)
}

func TestDecodeClaimsReadsPayloadWhateverTheHeader(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"admin","district":"Colombo","center_id":"7"}`))

	headers := map[string]string{
		"no alg":      `{"typ":"JWT"}`,
		"unknown alg": `{"alg":"RS512X","typ":"JWT"}`,
		"not json":    `header`,
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			raw := base64.RawURLEncoding.EncodeToString([]byte(header)) + "." + payload + ".sig"

			claims, err := token.DecodeClaims(raw)
			require.NoError(t, err)
			require.Equal(t, "admin", claims.Role)
			require.Equal(t, "Colombo", claims.District)
			require.Equal(t, "7", claims.CenterID)
		})
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	fixtures := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "one segment", raw: "abc"},
		{name: "two segments", raw: "abc.def"},
		{name: "four segments", raw: "a.b.c.d"},
		{name: "payload not base64", raw: header + ".!!!.sig"},
		{name: "payload not json", raw: header + "." + notJSON + ".sig"},
		{name: "payload not an object", raw: header + "." + base64.RawURLEncoding.EncodeToString([]byte(`["admin"]`)) + ".sig"},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			_, err := token.DecodeClaims(f.raw)
			require.ErrorIs(t, err, token.ErrMalformedToken)

			var decodeErr *token.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			require.NotEmpty(t, decodeErr.Reason)
		})
	}
}

func TestPairOAuth2Token(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	pair := token.Pair{Access: mint(t, jwtlib.MapClaims{"exp": exp.Unix()}), Refresh: "refresh-1"}

	tok := pair.OAuth2Token()
	require.Equal(t, pair.Access, tok.AccessToken)
	require.Equal(t, "refresh-1", tok.RefreshToken)
	require.Equal(t, "Bearer", tok.Type())
	require.True(t, tok.Expiry.Equal(exp))
}
