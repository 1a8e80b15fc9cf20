package auth

import "errors"

var (
	MissingCredentialsErr = errors.New("email and password are required")
	InvalidEmailErr       = errors.New("invalid email format")
	ProfileFetchErr       = errors.New("profile fetch failed after login")
	MissingAccessTokenErr = errors.New("refresh response has no access token")
)
