package reports

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const (
	reportsPath = "/api/reports/"

	// DefaultTrainingReportType is the export type used when none is given.
	DefaultTrainingReportType = "comprehensive"
)

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func (e Export) query() url.Values {
	p := apiclient.NewParams().
		Set("format", string(e.Format)).
		Set("period", string(e.Period)).
		Set("report_type", e.ReportType).
		Set("start_date", e.Options.StartDate).
		Set("end_date", e.Options.EndDate)
	for section, on := range e.Options.Include {
		p.Set("include_"+section, strconv.FormatBool(on))
	}
	return p.Values()
}

func (a *API) download(ctx context.Context, op, path string, query url.Values) (*apiclient.Blob, error) {
	blob, err := a.client.Download(ctx, apiclient.Request{Path: reportsPath + path, Query: query})
	if err != nil {
		return nil, fmt.Errorf("[Reports %s] %w", op, err)
	}
	return blob, nil
}

func (a *API) fetch(ctx context.Context, op string, req apiclient.Request, out any) error {
	if err := a.client.Do(ctx, req, out); err != nil {
		return fmt.Errorf("[Reports %s] %w", op, err)
	}
	return nil
}

// TrainingOfficer fetches the training officer dashboard. An empty period leaves the
// choice to the backend.
func (a *API) TrainingOfficer(ctx context.Context, period Period) (*TrainingOfficerReport, error) {
	var out TrainingOfficerReport
	req := apiclient.Request{
		Path:  reportsPath + "training-officer-reports/",
		Query: apiclient.NewParams().Set("period", string(period)).Values(),
	}
	if err := a.fetch(ctx, "TrainingOfficer", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ExportTraining(ctx context.Context, format Format, period Period, reportType string) (*apiclient.Blob, error) {
	if reportType == "" {
		reportType = DefaultTrainingReportType
	}
	e := Export{Format: format, Period: period, ReportType: reportType}
	return a.download(ctx, "ExportTraining", "export-training-report/", e.query())
}

func (a *API) HeadOffice(ctx context.Context) (*HeadOfficeReport, error) {
	var out HeadOfficeReport
	if err := a.fetch(ctx, "HeadOffice", apiclient.Request{Path: reportsPath + "head-office/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ExportHeadOffice(ctx context.Context, e Export) (*apiclient.Blob, error) {
	return a.download(ctx, "ExportHeadOffice", "export-head-office/", e.query())
}

func (a *API) District(ctx context.Context) (*DistrictReport, error) {
	var out DistrictReport
	if err := a.fetch(ctx, "District", apiclient.Request{Path: reportsPath + "district/"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ExportDistrict(ctx context.Context, e Export) (*apiclient.Blob, error) {
	return a.download(ctx, "ExportDistrict", "export-district/", e.query())
}

// System fetches the system report for a period and center. Both are always sent.
func (a *API) System(ctx context.Context, period, center string) (SystemReport, error) {
	var out SystemReport
	req := apiclient.Request{
		Path:  reportsPath,
		Query: url.Values{"period": {period}, "center": {center}},
	}
	if err := a.fetch(ctx, "System", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) List(ctx context.Context) ([]Stored, error) {
	var out []Stored
	if err := a.fetch(ctx, "List", apiclient.Request{Path: reportsPath}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Generate queues a report of the given type. params is passed through untouched.
func (a *API) Generate(ctx context.Context, reportType string, params any) (*GenerateResult, error) {
	var out GenerateResult
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   reportsPath + "generate/",
		Body: struct {
			Type   string `json:"type"`
			Params any    `json:"params"`
		}{Type: reportType, Params: params},
	}
	if err := a.fetch(ctx, "Generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Download(ctx context.Context, reportID int) (*apiclient.Blob, error) {
	return a.download(ctx, "Download", strconv.Itoa(reportID)+"/download/", nil)
}
