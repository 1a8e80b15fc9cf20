package attendance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const (
	attendancePath = "/api/attendance/"
	reportsPath    = "/api/attendance/reports/"

	// DefaultReportTimeout bounds report generation, the one call with its own deadline.
	DefaultReportTimeout = 60 * time.Second
)

var reportContentTypes = map[ReportFormat]string{
	FormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:   "application/pdf",
}

type API struct {
	client        apiclient.Doer
	reportTimeout time.Duration
	nowTime       func() time.Time
}

type APIOption func(*API)

func WithReportTimeout(d time.Duration) APIOption {
	return func(a *API) {
		if d > 0 {
			a.reportTimeout = d
		}
	}
}

// WithNowTime sets the clock used for default report file names (primarily for testing)
func WithNowTime(nowFunc func() time.Time) APIOption {
	return func(a *API) {
		a.nowTime = nowFunc
	}
}

func NewAPI(client apiclient.Doer, opts ...APIOption) *API {
	a := &API{
		client:        client,
		reportTimeout: DefaultReportTimeout,
		nowTime:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) List(ctx context.Context, filter Filter) ([]Record, error) {
	var out []Record
	req := apiclient.Request{
		Path: attendancePath,
		Query: apiclient.NewParams().
			SetInt("course", filter.Course).
			Set("date", filter.Date).
			Set("status", string(filter.Status)).
			Values(),
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance List] %w", err)
	}
	return out, nil
}

// ScanQR marks the student encoded in qrData as present on a course.
func (a *API) ScanQR(ctx context.Context, qrData string, courseID int) (*ScanResult, error) {
	var out ScanResult
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   attendancePath + "scan-qr/",
		Body: struct {
			QRData   string `json:"qr_data"`
			CourseID int    `json:"course_id"`
		}{QRData: qrData, CourseID: courseID},
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance ScanQR] course %d: %w", courseID, err)
	}
	return &out, nil
}

func (a *API) CourseStudents(ctx context.Context, courseID int) ([]CourseStudent, error) {
	var out []CourseStudent
	req := apiclient.Request{Path: fmt.Sprintf("%scourse/%d/students/", attendancePath, courseID)}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance CourseStudents] %d: %w", courseID, err)
	}
	return out, nil
}

// Update records or overwrites one attendance mark.
func (a *API) Update(ctx context.Context, mark Mark) (*Record, error) {
	var out Record
	req := apiclient.Request{Method: http.MethodPost, Path: attendancePath, Body: mark}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance Update] %w", err)
	}
	return &out, nil
}

func (a *API) BulkUpdate(ctx context.Context, courseID int, in BulkUpdate) (*BulkResult, error) {
	var out BulkResult
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%scourse/%d/bulk/", attendancePath, courseID),
		Body:   in,
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance BulkUpdate] %d: %w", courseID, err)
	}
	return &out, nil
}

// Summary returns totals for a course, for one date when date is not "".
func (a *API) Summary(ctx context.Context, courseID int, date string) (*Summary, error) {
	var out Summary
	req := apiclient.Request{
		Path:  fmt.Sprintf("%ssummary/%d/", attendancePath, courseID),
		Query: apiclient.NewParams().Set("date", date).Values(),
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance Summary] %d: %w", courseID, err)
	}
	return &out, nil
}

func (a *API) StudentStats(ctx context.Context, courseID int) ([]StudentStats, error) {
	var out []StudentStats
	req := apiclient.Request{Path: fmt.Sprintf("%scourse/%d/student-stats/", attendancePath, courseID)}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Attendance StudentStats] %d: %w", courseID, err)
	}
	return out, nil
}

// GenerateReport asks the backend to build a report and returns the file. The file name
// comes from Content-Disposition, or attendance_report_<unix ms>.<format> when absent.
func (a *API) GenerateReport(ctx context.Context, in ReportRequest) (*Report, error) {
	req := apiclient.Request{
		Method:  http.MethodPost,
		Path:    reportsPath + "generate/",
		Body:    in,
		Timeout: a.reportTimeout,
	}
	blob, err := a.client.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Attendance GenerateReport] course %d: %w", in.CourseID, err)
	}

	report := &Report{
		Filename:    blob.Filename,
		ContentType: reportContentTypes[in.Format],
		Data:        blob.Data,
	}
	if report.Filename == "" {
		report.Filename = fmt.Sprintf("attendance_report_%d.%s", a.nowTime().UnixMilli(), in.Format)
	}
	if report.ContentType == "" {
		report.ContentType = blob.ContentType
	}
	return report, nil
}

// DownloadFile fetches a report by the file URL the backend returned for it. fileURL must
// point at the backend: the request carries the session's bearer token whatever its host.
func (a *API) DownloadFile(ctx context.Context, fileURL string) (*apiclient.Blob, error) {
	blob, err := a.client.Download(ctx, apiclient.Request{Path: fileURL})
	if err != nil {
		return nil, fmt.Errorf("[Attendance DownloadFile] %w", err)
	}
	return blob, nil
}

func (a *API) DownloadReport(ctx context.Context, reportID int) (*apiclient.Blob, error) {
	blob, err := a.client.Download(ctx, apiclient.Request{Path: fmt.Sprintf("%s%d/download/", reportsPath, reportID)})
	if err != nil {
		return nil, fmt.Errorf("[Attendance DownloadReport] %d: %w", reportID, err)
	}
	return blob, nil
}

func (a *API) ReportStatus(ctx context.Context, reportID int) (*StoredReport, error) {
	var out StoredReport
	if err := a.client.Do(ctx, apiclient.Request{Path: fmt.Sprintf("%s%d/status/", reportsPath, reportID)}, &out); err != nil {
		return nil, fmt.Errorf("[Attendance ReportStatus] %d: %w", reportID, err)
	}
	return &out, nil
}

func (a *API) MyReports(ctx context.Context) ([]StoredReport, error) {
	var out []StoredReport
	if err := a.client.Do(ctx, apiclient.Request{Path: reportsPath + "my/"}, &out); err != nil {
		return nil, fmt.Errorf("[Attendance MyReports] %w", err)
	}
	return out, nil
}

func (a *API) DeleteReport(ctx context.Context, reportID int) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: fmt.Sprintf("%s%d/", reportsPath, reportID)}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Attendance DeleteReport] %d: %w", reportID, err)
	}
	return nil
}
