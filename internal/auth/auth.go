package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

// HeaderAPIKey is the request header carrying the shared secret.
const HeaderAPIKey = "X-API-Key"

var (
	ErrMissingAPIKey = errors.New("API key is missing; provide the X-API-Key header")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

type Authenticator interface {
	Authenticate(r *http.Request) error
}

// APIKeyAuthenticator compares the X-API-Key header against a single shared
// secret in constant time.
type APIKeyAuthenticator struct {
	Key string
}

func (a *APIKeyAuthenticator) Authenticate(r *http.Request) error {
	got := r.Header.Get(HeaderAPIKey)
	if got == "" {
		return ErrMissingAPIKey
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.Key)) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}
