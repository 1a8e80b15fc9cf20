package centers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const centersPath = "/api/centers/"

// Center is a training center
type Center struct {
	ID                    int     `json:"id"`
	Name                  string  `json:"name"`
	Location              *string `json:"location"`
	District              *string `json:"district"`
	Manager               *string `json:"manager,omitempty"`
	Phone                 *string `json:"phone,omitempty"`
	StudentCount          *int    `json:"student_count,omitempty"`
	InstructorCount       *int    `json:"instructor_count,omitempty"`
	Status                string  `json:"status,omitempty"`
	Performance           *string `json:"performance,omitempty"`
	EnrolledStudentsCount int     `json:"enrolled_students_count,omitempty"`
}

// Fields is the body for creating or partially updating a center. Nil fields are omitted.
type Fields struct {
	Name            *string `json:"name,omitempty"`
	Location        *string `json:"location,omitempty"`
	District        *string `json:"district,omitempty"`
	Manager         *string `json:"manager,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	StudentCount    *int    `json:"student_count,omitempty"`
	InstructorCount *int    `json:"instructor_count,omitempty"`
	Status          *string `json:"status,omitempty"`
	Performance     *string `json:"performance,omitempty"`
}

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func (a *API) List(ctx context.Context) ([]Center, error) {
	return a.list(ctx, centersPath, "[Centers List]")
}

// ListForStudent returns the centers a student may register with.
func (a *API) ListForStudent(ctx context.Context) ([]Center, error) {
	return a.list(ctx, centersPath+"for-student/", "[Centers ListForStudent]")
}

func (a *API) list(ctx context.Context, path, op string) ([]Center, error) {
	var out []Center
	if err := a.client.Do(ctx, apiclient.Request{Path: path}, &out); err != nil {
		return nil, fmt.Errorf("%s %w", op, err)
	}
	return out, nil
}

func (a *API) Create(ctx context.Context, in Fields) (*Center, error) {
	var out Center
	req := apiclient.Request{Method: http.MethodPost, Path: centersPath + "create/", Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Centers Create] %w", err)
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, id int, in Fields) (*Center, error) {
	var out Center
	req := apiclient.Request{Method: http.MethodPatch, Path: fmt.Sprintf("%s%d/update/", centersPath, id), Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Centers Update] %d: %w", id, err)
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, id int) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: fmt.Sprintf("%s%d/delete/", centersPath, id)}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Centers Delete] %d: %w", id, err)
	}
	return nil
}
