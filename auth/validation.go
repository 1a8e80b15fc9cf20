package auth

import (
	"fmt"
	"strings"
)

// ValidateCredentials rejects login input that the backend could never accept, so no
// request is sent for it.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return MissingCredentialsErr
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return fmt.Errorf("%w: %q", InvalidEmailErr, email)
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return fmt.Errorf("%w: %q", InvalidEmailErr, email)
	}
	return nil
}
