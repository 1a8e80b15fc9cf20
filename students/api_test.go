package students_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/internal/apitest"
	"github.com/jrsteele09/tcms-client/internal/utils"
	"github.com/jrsteele09/tcms-client/students"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (*students.API, *apitest.Backend) {
	t.Helper()
	backend := apitest.NewBackend(t)
	return students.NewAPI(backend.Client(t, "access-1")), backend
}

func TestListFilter(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/students/", apitest.Respond(http.StatusOK, []map[string]any{
		{"id": 11, "registration_no": "CMB/WLD/24/0001", "full_name_english": "Nimal Perera", "training_received": true},
	}))

	out, err := api.List(context.Background(), students.Filter{
		District:         "Colombo",
		Center:           3,
		TrainingReceived: utils.Ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 11, *out[0].ID)
	require.True(t, out[0].TrainingReceived)

	rec, _ := backend.Last("/api/students/")
	require.Equal(t, "center=3&district=Colombo&training_received=true", rec.Query)
}

func TestUpdateSendsOnlyGivenFields(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Patch("/api/students/11/", apitest.Respond(http.StatusOK, map[string]any{"id": 11, "mobile_no": "0771234567"}))

	out, err := api.Update(context.Background(), 11, map[string]any{"mobile_no": "0771234567"})
	require.NoError(t, err)
	require.Equal(t, "0771234567", out.MobileNo)

	rec, _ := backend.Last("/api/students/11/")
	require.Equal(t, http.MethodPatch, rec.Method)
	require.JSONEq(t, `{"mobile_no":"0771234567"}`, string(rec.Body))
}

func TestExport(t *testing.T) {
	tests := map[string]struct {
		format   students.ExportFormat
		expected string
	}{
		"default csv": {format: "", expected: "format=csv"},
		"excel":       {format: students.ExportExcel, expected: "format=excel"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			api, backend := newAPI(t)
			backend.Router.Get("/api/students/export/", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Disposition", `attachment; filename="students.csv"`)
				_, _ = w.Write([]byte("id\n1\n"))
			})

			blob, err := api.Export(context.Background(), tc.format)
			require.NoError(t, err)
			require.Equal(t, "students.csv", blob.Filename)

			rec, _ := backend.Last("/api/students/export/")
			require.Equal(t, tc.expected, rec.Query)
		})
	}
}

func TestImportUploadsFileField(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Post("/api/students/import/", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			apitest.JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		apitest.JSON(w, http.StatusOK, map[string]any{
			"message":  header.Filename,
			"imported": strings.Count(string(data), "\n"),
			"errors":   []string{},
		})
	})

	res, err := api.Import(context.Background(), "batch.csv", strings.NewReader("a\nb\nc\n"))
	require.NoError(t, err)
	require.Equal(t, "batch.csv", res.Message)
	require.Equal(t, 3, res.Imported)
}

func TestImportRejected(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Post("/api/students/import/", apitest.Respond(http.StatusBadRequest, map[string]string{"error": "Unsupported file type"}))

	_, err := api.Import(context.Background(), "batch.txt", strings.NewReader("x"))
	require.ErrorIs(t, err, apiclient.ErrBadRequest)

	var httpErr *apiclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "Unsupported file type", httpErr.Detail())
}

func TestBulkIDCards(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Post("/api/students/bulk-id-cards/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF"))
	})

	blob, err := api.BulkIDCards(context.Background(), []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, "application/pdf", blob.ContentType)

	rec, _ := backend.Last("/api/students/bulk-id-cards/")
	var body map[string][]int
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	require.Equal(t, []int{1, 2}, body["student_ids"])
}

func TestPreviewRegistration(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Post("/api/students/preview_registration/", apitest.Respond(http.StatusOK, map[string]any{
		"district_code":     "CMB",
		"course_code":       "WLD",
		"full_registration": "CMB/WLD/B1/0001/24",
	}))

	out, err := api.PreviewRegistration(context.Background(), students.RegistrationPreviewRequest{District: "Colombo", CourseID: utils.Ptr(7)})
	require.NoError(t, err)
	require.Equal(t, "CMB/WLD/B1/0001/24", out.FullRegistration)

	rec, _ := backend.Last("/api/students/preview_registration/")
	require.JSONEq(t, `{"district":"Colombo","course_id":7}`, string(rec.Body))
}
