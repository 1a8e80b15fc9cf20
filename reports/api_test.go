package reports_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/tcms-client/internal/apitest"
	"github.com/jrsteele09/tcms-client/reports"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (*reports.API, *apitest.Backend) {
	t.Helper()
	backend := apitest.NewBackend(t)
	return reports.NewAPI(backend.Client(t, "access-1")), backend
}

func blobHandler(filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write([]byte("report"))
	}
}

func query(t *testing.T, backend *apitest.Backend, path string) url.Values {
	t.Helper()
	rec, ok := backend.Last(path)
	require.True(t, ok)
	values, err := url.ParseQuery(rec.Query)
	require.NoError(t, err)
	return values
}

func TestTrainingOfficer(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/reports/training-officer-reports/", apitest.Respond(http.StatusOK, map[string]any{
		"overall_stats":      map[string]any{"total_students": 120, "completion_rate": 64.5},
		"center_performance": []any{map[string]any{"center_name": "Kandy", "performance": "good"}},
		"pending_approvals":  map[string]any{"course_approvals": 2, "general_approvals": 1},
		"period":             "monthly",
	}))

	out, err := api.TrainingOfficer(context.Background(), reports.PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, 120, out.OverallStats.TotalStudents)
	require.Equal(t, 64.5, out.OverallStats.CompletionRate)
	require.Len(t, out.CenterPerformance, 1)
	require.Equal(t, 2, out.PendingApprovals.CourseApprovals)

	require.Equal(t, "monthly", query(t, backend, "/api/reports/training-officer-reports/").Get("period"))

	_, err = api.TrainingOfficer(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, query(t, backend, "/api/reports/training-officer-reports/"))
}

func TestExportTrainingDefaultsType(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/reports/export-training-report/", blobHandler("training.pdf"))

	blob, err := api.ExportTraining(context.Background(), reports.FormatPDF, reports.PeriodWeekly, "")
	require.NoError(t, err)
	require.Equal(t, "training.pdf", blob.Filename)

	q := query(t, backend, "/api/reports/export-training-report/")
	require.Equal(t, "pdf", q.Get("format"))
	require.Equal(t, "weekly", q.Get("period"))
	require.Equal(t, reports.DefaultTrainingReportType, q.Get("report_type"))
}

func TestExportHeadOfficeOptions(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/reports/export-head-office/", blobHandler("island.xlsx"))

	_, err := api.ExportHeadOffice(context.Background(), reports.Export{
		Format:     reports.FormatExcel,
		Period:     reports.PeriodCustom,
		ReportType: "island",
		Options: reports.ExportOptions{
			StartDate: "2024-01-01",
			EndDate:   "2024-03-31",
			Include:   map[string]bool{"districts": true, "instructors": false},
		},
	})
	require.NoError(t, err)

	q := query(t, backend, "/api/reports/export-head-office/")
	require.Equal(t, url.Values{
		"format":              {"excel"},
		"period":              {"custom"},
		"report_type":         {"island"},
		"start_date":          {"2024-01-01"},
		"end_date":            {"2024-03-31"},
		"include_districts":   {"true"},
		"include_instructors": {"false"},
	}, q)
}

func TestDistrictReportCamelCase(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/reports/district/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":{"totalCenters":{"current":4},"completionRate":{"current":71.2}},"recentApprovals":[{"id":1,"type":"course","name":"Welding","status":"approved","date":"2024-03-01"}]}`))
	})
	backend.Router.Get("/api/reports/export-district/", blobHandler("district.pdf"))

	out, err := api.District(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4.0, out.Summary.TotalCenters.Current)
	require.Equal(t, 71.2, out.Summary.CompletionRate.Current)
	require.Len(t, out.RecentApprovals, 1)

	_, err = api.ExportDistrict(context.Background(), reports.Export{Format: reports.FormatPDF, Period: reports.PeriodQuarterly, ReportType: "centers"})
	require.NoError(t, err)
	q := query(t, backend, "/api/reports/export-district/")
	require.Equal(t, "centers", q.Get("report_type"))
	require.NotContains(t, q, "start_date")
}

func TestSystemSendsEmptyParams(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Get("/api/reports/", apitest.Respond(http.StatusOK, map[string]any{"total": 3}))

	out, err := api.System(context.Background(), "monthly", "")
	require.NoError(t, err)
	require.JSONEq(t, `{"total":3}`, string(out))

	rec, _ := backend.Last("/api/reports/")
	require.Equal(t, "center=&period=monthly", rec.Query)
}

func TestGenerateAndDownload(t *testing.T) {
	api, backend := newAPI(t)
	backend.Router.Post("/api/reports/generate/", apitest.Respond(http.StatusAccepted, map[string]any{"report_id": 12, "status": "pending"}))
	backend.Router.Get("/api/reports/12/download/", blobHandler("r12.pdf"))

	res, err := api.Generate(context.Background(), "enrollment", map[string]string{"district": "Kandy"})
	require.NoError(t, err)
	require.Equal(t, 12, res.ReportID)

	rec, _ := backend.Last("/api/reports/generate/")
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body, &body))
	require.Equal(t, "enrollment", body["type"])
	require.Equal(t, map[string]any{"district": "Kandy"}, body["params"])

	blob, err := api.Download(context.Background(), res.ReportID)
	require.NoError(t, err)
	require.Equal(t, "r12.pdf", blob.Filename)
}
