// Package apitest provides an in-process stand-in for the TCMS backend used by tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/session/memstore"
)

// Recorded is a request as the backend received it.
type Recorded struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

// Backend is an httptest server with a chi router. Register handlers on Router before
// issuing requests.
type Backend struct {
	Router chi.Router
	server *httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{Router: chi.NewRouter()}
	b.Router.Use(b.record)
	b.server = httptest.NewServer(b.Router)
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Client returns an API client pointed at the backend with accessToken already stored.
func (b *Backend) Client(t testing.TB, accessToken string, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()

	sessions := session.NewManager(memstore.New())
	if accessToken != "" {
		if err := sessions.Set(context.Background(), session.KeyAccessToken, accessToken); err != nil {
			t.Fatalf("store access token: %v", err)
		}
	}
	opts = append([]apiclient.Option{apiclient.WithBaseURL(b.URL()), apiclient.WithNavigator(&Navigator{})}, opts...)
	client, err := apiclient.New(sessions, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

// Count returns how many requests hit method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request for path.
func (b *Backend) Last(path string) (Recorded, bool) {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Recorded{}, false
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		b.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Respond returns a handler that always answers with status and v.
func Respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, status, v)
	}
}

// Detail returns a handler answering with a DRF style {"detail": msg} body.
func Detail(status int, msg string) http.HandlerFunc {
	return Respond(status, map[string]string{"detail": msg})
}

// MintToken signs claims the way the backend does. Clients never verify the signature.
func MintToken(t testing.TB, claims map[string]any) string {
	t.Helper()
	mapClaims := jwtlib.MapClaims{
		"exp":        time.Now().Add(time.Hour).Unix(),
		"token_type": "access",
	}
	for k, v := range claims {
		mapClaims[k] = v
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, mapClaims).SignedString([]byte("apitest"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return signed
}

// Navigator records navigations.
type Navigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *Navigator) Navigate(_ context.Context, route string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
	return nil
}

func (n *Navigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.routes))
	copy(out, n.routes)
	return out
}
