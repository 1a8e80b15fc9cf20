package students

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const studentsPath = "/api/students/"

// ExportFormat selects the spreadsheet type of an export
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func studentPath(id int, suffix string) string {
	return studentsPath + strconv.Itoa(id) + "/" + suffix
}

func get[T any](ctx context.Context, client apiclient.Doer, req apiclient.Request, op string) (T, error) {
	var out T
	if err := client.Do(ctx, req, &out); err != nil {
		return out, fmt.Errorf("[Students %s] %w", op, err)
	}
	return out, nil
}

func (a *API) List(ctx context.Context, filter Filter) ([]Student, error) {
	query := apiclient.NewParams().
		Set("search", filter.Search).
		Set("district", filter.District).
		SetInt("center", filter.Center).
		SetInt("course", filter.Course).
		Set("enrollment_status", string(filter.EnrollmentStatus)).
		SetBool("training_received", filter.TrainingReceived).
		Values()
	return get[[]Student](ctx, a.client, apiclient.Request{Path: studentsPath, Query: query}, "List")
}

func (a *API) Get(ctx context.Context, id int) (*Student, error) {
	out, err := get[Student](ctx, a.client, apiclient.Request{Path: studentPath(id, "")}, "Get")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, in Student) (*Student, error) {
	req := apiclient.Request{Method: http.MethodPost, Path: studentsPath, Body: in}
	out, err := get[Student](ctx, a.client, req, "Create")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update. fields holds only the JSON fields to change.
func (a *API) Update(ctx context.Context, id int, fields map[string]any) (*Student, error) {
	req := apiclient.Request{Method: http.MethodPatch, Path: studentPath(id, ""), Body: fields}
	out, err := get[Student](ctx, a.client, req, "Update")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, id int) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: studentPath(id, "")}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Students Delete] %d: %w", id, err)
	}
	return nil
}

func (a *API) Stats(ctx context.Context) (*Stats, error) {
	out, err := get[Stats](ctx, a.client, apiclient.Request{Path: studentsPath + "stats/"}, "Stats")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads every visible student as CSV or Excel. An empty format means CSV.
func (a *API) Export(ctx context.Context, format ExportFormat) (*apiclient.Blob, error) {
	if format == "" {
		format = ExportCSV
	}
	req := apiclient.Request{
		Path:  studentsPath + "export/",
		Query: apiclient.NewParams().Set("format", string(format)).Values(),
	}
	blob, err := a.client.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Students Export] %w", err)
	}
	return blob, nil
}

// Import uploads a spreadsheet of students as the "file" form field.
func (a *API) Import(ctx context.Context, filename string, content io.Reader) (*ImportResult, error) {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   studentsPath + "import/",
		Multipart: &apiclient.Multipart{
			Files: []apiclient.File{{Field: "file", Filename: filename, Content: content}},
		},
	}
	out, err := get[ImportResult](ctx, a.client, req, "Import")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) QRCode(ctx context.Context, id int) (*QRCode, error) {
	out, err := get[QRCode](ctx, a.client, apiclient.Request{Path: studentPath(id, "qrcode/")}, "QRCode")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// QRLookup finds the student a scanned QR payload belongs to.
func (a *API) QRLookup(ctx context.Context, qrData string) (*Student, error) {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   studentsPath + "qr-lookup/",
		Body:   map[string]string{"qr_data": qrData},
	}
	out, err := get[Student](ctx, a.client, req, "QRLookup")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// IDCard downloads a printable ID card.
func (a *API) IDCard(ctx context.Context, id int) (*apiclient.Blob, error) {
	blob, err := a.client.Download(ctx, apiclient.Request{Path: studentPath(id, "id-card/")})
	if err != nil {
		return nil, fmt.Errorf("[Students IDCard] %d: %w", id, err)
	}
	return blob, nil
}

func (a *API) BulkIDCards(ctx context.Context, ids []int) (*apiclient.Blob, error) {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   studentsPath + "bulk-id-cards/",
		Body:   map[string][]int{"student_ids": ids},
	}
	blob, err := a.client.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Students BulkIDCards] %w", err)
	}
	return blob, nil
}

func (a *API) PreviewRegistration(ctx context.Context, in RegistrationPreviewRequest) (*RegistrationPreview, error) {
	req := apiclient.Request{Method: http.MethodPost, Path: studentsPath + "preview_registration/", Body: in}
	out, err := get[RegistrationPreview](ctx, a.client, req, "PreviewRegistration")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) RegistrationFormats(ctx context.Context) (*RegistrationFormats, error) {
	out, err := get[RegistrationFormats](ctx, a.client, apiclient.Request{Path: studentsPath + "registration_formats/"}, "RegistrationFormats")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) DistrictCodes(ctx context.Context) ([]DistrictCode, error) {
	return get[[]DistrictCode](ctx, a.client, apiclient.Request{Path: studentsPath + "available_district_codes/"}, "DistrictCodes")
}

func (a *API) CourseCodes(ctx context.Context) ([]CourseCode, error) {
	return get[[]CourseCode](ctx, a.client, apiclient.Request{Path: studentsPath + "available_course_codes/"}, "CourseCodes")
}

func (a *API) BatchYears(ctx context.Context) ([]BatchYear, error) {
	return get[[]BatchYear](ctx, a.client, apiclient.Request{Path: studentsPath + "available_batch_years/"}, "BatchYears")
}

func (a *API) Batches(ctx context.Context) ([]Batch, error) {
	return get[[]Batch](ctx, a.client, apiclient.Request{Path: studentsPath + "available_batches/"}, "Batches")
}
