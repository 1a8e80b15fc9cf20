package auth_test

import (
	"testing"

	"github.com/jrsteele09/tcms-client/auth"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, auth.ValidateCredentials("a@b.com", "x"))
		require.NoError(t, auth.ValidateCredentials("  jane.doe@tcms.lk ", "secret"))
	})

	t.Run("missing email", func(t *testing.T) {
		require.ErrorIs(t, auth.ValidateCredentials(" ", "x"), auth.MissingCredentialsErr)
	})

	t.Run("missing password", func(t *testing.T) {
		require.ErrorIs(t, auth.ValidateCredentials("a@b.com", ""), auth.MissingCredentialsErr)
	})

	t.Run("malformed email", func(t *testing.T) {
		for _, email := range []string{"jane", "@b.com", "a@", "a@@b.com", "a b@c.com"} {
			err := auth.ValidateCredentials(email, "x")
			require.ErrorIs(t, err, auth.InvalidEmailErr, email)
		}
	})
}
