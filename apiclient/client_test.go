package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/internal/apitest"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/session/memstore"
	"github.com/stretchr/testify/require"
)

func fullSession() map[session.Key]string {
	return map[session.Key]string{
		session.KeyAccessToken:  "access-1",
		session.KeyRefreshToken: "refresh-1",
		session.KeyRole:         "admin",
		session.KeyDistrict:     "Colombo",
		session.KeyCenterID:     "3",
		session.KeyCenterName:   "Colombo Central",
		session.KeyFirstName:    "Jane",
		session.KeyLastName:     "Doe",
	}
}

func setup(t *testing.T, values map[session.Key]string) (*apiclient.Client, *apitest.Backend, *session.Manager, *apitest.Navigator) {
	t.Helper()

	ctx := context.Background()
	sessions := session.NewManager(memstore.New())
	if values != nil {
		require.NoError(t, sessions.Put(ctx, values))
	}

	backend := apitest.NewBackend(t)
	nav := &apitest.Navigator{}
	client, err := apiclient.New(sessions, apiclient.WithBaseURL(backend.URL()), apiclient.WithNavigator(nav))
	require.NoError(t, err)
	return client, backend, sessions, nav
}

func TestBearerTokenIsAttached(t *testing.T) {
	client, backend, _, _ := setup(t, fullSession())
	backend.Router.Get("/api/centers/", apitest.Respond(http.StatusOK, []any{}))

	var out []map[string]any
	require.NoError(t, client.Do(context.Background(), apiclient.Request{Path: "/api/centers/"}, &out))

	rec, ok := backend.Last("/api/centers/")
	require.True(t, ok)
	require.Equal(t, "Bearer access-1", rec.Authorization)
	require.NotEmpty(t, rec.RequestID)
}

func TestNoBearerWithoutToken(t *testing.T) {
	client, backend, _, _ := setup(t, nil)
	backend.Router.Get("/api/courses/", apitest.Respond(http.StatusOK, []any{}))

	require.NoError(t, client.Do(context.Background(), apiclient.Request{Path: "/api/courses/"}, nil))

	rec, ok := backend.Last("/api/courses/")
	require.True(t, ok)
	require.Empty(t, rec.Authorization)
}

func TestUnauthorizedClearsSessionAndNavigatesOnce(t *testing.T) {
	ctx := context.Background()
	client, backend, sessions, nav := setup(t, fullSession())
	backend.Router.Get("/api/users/", apitest.Detail(http.StatusUnauthorized, "Token is invalid or expired"))

	err := client.Do(ctx, apiclient.Request{Path: "/api/users/"}, nil)
	require.ErrorIs(t, err, apiclient.ErrUnauthorized)
	require.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
	require.Contains(t, err.Error(), "Token is invalid or expired")

	snapshot, err := sessions.Snapshot(ctx)
	require.NoError(t, err)
	require.True(t, snapshot.Empty())
	for _, key := range session.AllKeys() {
		value, err := sessions.Get(ctx, key)
		require.NoError(t, err)
		require.Empty(t, value, key)
	}

	require.Equal(t, []string{apiclient.LoginRoute}, nav.Routes())
	require.Equal(t, 1, backend.Count(http.MethodGet, "/api/users/"))
}

func TestForbiddenKeepsSession(t *testing.T) {
	ctx := context.Background()
	client, backend, sessions, nav := setup(t, fullSession())
	backend.Router.Delete("/api/users/{id}/", apitest.Detail(http.StatusForbidden, "You do not have permission to perform this action."))

	err := client.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: "/api/users/9/"}, nil)
	require.ErrorIs(t, err, apiclient.ErrForbidden)
	require.NotErrorIs(t, err, apiclient.ErrUnauthorized)

	var httpErr *apiclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "You do not have permission to perform this action.", httpErr.Detail())
	require.Equal(t, "/api/users/9/", httpErr.Path)

	token, err := sessions.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "access-1", token)
	require.Empty(t, nav.Routes())
}

func TestStatusErrors(t *testing.T) {
	fixtures := []struct {
		status int
		target error
	}{
		{status: http.StatusBadRequest, target: apiclient.ErrBadRequest},
		{status: http.StatusNotFound, target: apiclient.ErrNotFound},
		{status: http.StatusConflict, target: apiclient.ErrConflict},
		{status: http.StatusBadGateway, target: apiclient.ErrServer},
	}

	for _, f := range fixtures {
		t.Run(http.StatusText(f.status), func(t *testing.T) {
			client, backend, _, _ := setup(t, nil)
			backend.Router.Get("/x/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(f.status)
			})
			err := client.Do(context.Background(), apiclient.Request{Path: "/x/"}, nil)
			require.ErrorIs(t, err, f.target)
		})
	}
}

func TestJSONBodyAndQuery(t *testing.T) {
	client, backend, _, _ := setup(t, nil)
	backend.Router.Post("/api/courses/", apitest.Respond(http.StatusCreated, map[string]any{"id": 5, "name": "Welding"}))

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	err := client.Do(context.Background(), apiclient.Request{
		Method: http.MethodPost,
		Path:   "/api/courses/",
		Query:  apiclient.NewParams().Set("status", "Active").Set("district", "").Values(),
		Body:   map[string]string{"name": "Welding"},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, 5, out.ID)

	rec, ok := backend.Last("/api/courses/")
	require.True(t, ok)
	require.Equal(t, "status=Active", rec.Query)
	require.Equal(t, "application/json", rec.ContentType)
	require.JSONEq(t, `{"name":"Welding"}`, string(rec.Body))
}

func TestDownloadReadsFilename(t *testing.T) {
	client, backend, _, _ := setup(t, fullSession())
	backend.Router.Get("/api/students/export/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
		_, _ = w.Write([]byte("id,name\n1,Jane\n"))
	})

	blob, err := client.Download(context.Background(), apiclient.Request{Path: "/api/students/export/"})
	require.NoError(t, err)
	require.Equal(t, "students.csv", blob.Filename)
	require.Equal(t, "text/csv", blob.ContentType)
	require.Equal(t, "id,name\n1,Jane\n", string(blob.Data))
}

func TestMultipartUpload(t *testing.T) {
	client, backend, _, _ := setup(t, nil)
	backend.Router.Post("/api/students/import/", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		apitest.JSON(w, http.StatusOK, map[string]any{"filename": header.Filename, "size": len(data)})
	})

	var out struct {
		Filename string `json:"filename"`
		Size     int    `json:"size"`
	}
	err := client.Do(context.Background(), apiclient.Request{
		Method: http.MethodPost,
		Path:   "/api/students/import/",
		Multipart: &apiclient.Multipart{
			Files: []apiclient.File{{Field: "file", Filename: "students.csv", Content: strings.NewReader("a,b\n")}},
		},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, "students.csv", out.Filename)
	require.Equal(t, 4, out.Size)

	rec, _ := backend.Last("/api/students/import/")
	require.True(t, strings.HasPrefix(rec.ContentType, "multipart/form-data"))
}

func TestRequestTimeout(t *testing.T) {
	client, backend, _, _ := setup(t, nil)
	backend.Router.Get("/slow/", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	err := client.Do(context.Background(), apiclient.Request{Path: "/slow/", Timeout: 50 * time.Millisecond}, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAbsolutePathIsUsedAsIs(t *testing.T) {
	backend := apitest.NewBackend(t)
	backend.Router.Get("/media/reports/r.pdf", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("%PDF"))
	})

	client, err := apiclient.New(session.NewManager(memstore.New()), apiclient.WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, err)

	blob, err := client.Download(context.Background(), apiclient.Request{Path: backend.URL() + "/media/reports/r.pdf"})
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(blob.Data))
	require.Empty(t, blob.Filename)
}

func TestCustomInterceptorsRunAfterBuiltIns(t *testing.T) {
	backend := apitest.NewBackend(t)
	backend.Router.Get("/x/", apitest.Respond(http.StatusOK, map[string]any{}))

	var seenAuth string
	sessions := session.NewManager(memstore.New())
	require.NoError(t, sessions.Set(context.Background(), session.KeyAccessToken, "t-1"))

	client, err := apiclient.New(sessions,
		apiclient.WithBaseURL(backend.URL()),
		apiclient.WithRequestInterceptor(func(_ context.Context, req *http.Request) error {
			seenAuth = req.Header.Get("Authorization")
			return nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, client.Do(context.Background(), apiclient.Request{Path: "/x/"}, nil))
	require.Equal(t, "Bearer t-1", seenAuth)
}

func TestInvalidBaseURL(t *testing.T) {
	_, err := apiclient.New(session.NewManager(memstore.New()), apiclient.WithBaseURL("not a url"))
	require.Error(t, err)
}

func TestFilenameFromDisposition(t *testing.T) {
	require.Equal(t, "r.xlsx", apiclient.FilenameFromDisposition(`attachment; filename="r.xlsx"`))
	require.Equal(t, "r.pdf", apiclient.FilenameFromDisposition(`attachment; filename=r.pdf`))
	require.Empty(t, apiclient.FilenameFromDisposition("attachment"))
	require.Empty(t, apiclient.FilenameFromDisposition(""))
}
