package courses

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/centers"
)

const coursesPath = "/api/courses/"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// InstructorRef is the embedded summary of a course's instructor
type InstructorRef struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Course struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Description       *string         `json:"description,omitempty"`
	Category          *string         `json:"category,omitempty"`
	Duration          *string         `json:"duration,omitempty"`
	Schedule          *string         `json:"schedule,omitempty"`
	Students          int             `json:"students"`
	Progress          float64         `json:"progress"`
	NextSession       *string         `json:"next_session,omitempty"`
	Instructor        *int            `json:"instructor"`
	InstructorDetails *InstructorRef  `json:"instructor_details,omitempty"`
	District          string          `json:"district"`
	Center            *int            `json:"center"`
	CenterDetails     *centers.Center `json:"center_details,omitempty"`
	Status            Status          `json:"status"`
	Priority          string          `json:"priority"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Fields is the body for creating or partially updating a course. Nil fields are omitted.
type Fields struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Schedule    *string `json:"schedule,omitempty"`
	NextSession *string `json:"next_session,omitempty"`
	Instructor  *int    `json:"instructor,omitempty"`
	District    *string `json:"district,omitempty"`
	Center      *int    `json:"center,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// Filter narrows List. Zero values are not sent.
type Filter struct {
	District string
	Status   Status
	Category string
	Center   int
}

// AssignmentRequest is returned when an instructor asks to take a course
type AssignmentRequest struct {
	ID       int    `json:"id"`
	Course   int    `json:"course"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Comments string `json:"comments,omitempty"`
}

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func coursePath(id int, suffix string) string {
	return coursesPath + strconv.Itoa(id) + "/" + suffix
}

func (a *API) List(ctx context.Context, filter Filter) ([]Course, error) {
	query := apiclient.NewParams().
		Set("district", filter.District).
		Set("status", string(filter.Status)).
		Set("category", filter.Category).
		SetInt("center", filter.Center).
		Values()
	return a.list(ctx, apiclient.Request{Path: coursesPath, Query: query}, "[Courses List]")
}

// Mine lists courses assigned to the logged in instructor.
func (a *API) Mine(ctx context.Context) ([]Course, error) {
	return a.list(ctx, apiclient.Request{Path: coursesPath + "my/"}, "[Courses Mine]")
}

// Available lists courses without an instructor.
func (a *API) Available(ctx context.Context) ([]Course, error) {
	return a.list(ctx, apiclient.Request{Path: coursesPath + "available/"}, "[Courses Available]")
}

func (a *API) Pending(ctx context.Context) ([]Course, error) {
	return a.list(ctx, apiclient.Request{Path: coursesPath + "pending/"}, "[Courses Pending]")
}

// ForStudent lists courses open for registration, optionally at one center.
func (a *API) ForStudent(ctx context.Context, centerID int) ([]Course, error) {
	req := apiclient.Request{
		Path:  coursesPath + "for-student/",
		Query: apiclient.NewParams().SetInt("center", centerID).Values(),
	}
	return a.list(ctx, req, "[Courses ForStudent]")
}

func (a *API) list(ctx context.Context, req apiclient.Request, op string) ([]Course, error) {
	var out []Course
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("%s %w", op, err)
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id int) (*Course, error) {
	var out Course
	if err := a.client.Do(ctx, apiclient.Request{Path: coursePath(id, "")}, &out); err != nil {
		return nil, fmt.Errorf("[Courses Get] %d: %w", id, err)
	}
	return &out, nil
}

func (a *API) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := a.client.Do(ctx, apiclient.Request{Path: coursesPath + "categories/"}, &out); err != nil {
		return nil, fmt.Errorf("[Courses Categories] %w", err)
	}
	return out, nil
}

func (a *API) Durations(ctx context.Context) ([]string, error) {
	var out []string
	if err := a.client.Do(ctx, apiclient.Request{Path: coursesPath + "durations/"}, &out); err != nil {
		return nil, fmt.Errorf("[Courses Durations] %w", err)
	}
	return out, nil
}

func (a *API) Create(ctx context.Context, in Fields) (*Course, error) {
	var out Course
	req := apiclient.Request{Method: http.MethodPost, Path: coursesPath, Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Courses Create] %w", err)
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, id int, in Fields) (*Course, error) {
	var out Course
	req := apiclient.Request{Method: http.MethodPatch, Path: coursePath(id, ""), Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Courses Update] %d: %w", id, err)
	}
	return &out, nil
}

// UpdateStatus patches only the status field.
func (a *API) UpdateStatus(ctx context.Context, id int, status Status) (*Course, error) {
	return a.Update(ctx, id, Fields{Status: &status})
}

func (a *API) Delete(ctx context.Context, id int) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: coursePath(id, "")}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Courses Delete] %d: %w", id, err)
	}
	return nil
}

// action posts to one of the course workflow endpoints and returns the updated course.
func (a *API) action(ctx context.Context, id int, name string, body any) (*Course, error) {
	var out Course
	req := apiclient.Request{Method: http.MethodPost, Path: coursePath(id, name+"/"), Body: body}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Courses %s] %d: %w", name, id, err)
	}
	return &out, nil
}

func (a *API) AssignInstructor(ctx context.Context, id, instructorID int) (*Course, error) {
	return a.action(ctx, id, "assign_instructor", map[string]int{"instructor_id": instructorID})
}

func (a *API) AssignToMe(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "assign_to_me", nil)
}

func (a *API) Approve(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "approve", nil)
}

// Reject declines a pending course. Empty comments are left out of the body.
func (a *API) Reject(ctx context.Context, id int, comments string) (*Course, error) {
	body := struct {
		Comments string `json:"comments,omitempty"`
	}{Comments: comments}
	return a.action(ctx, id, "reject", body)
}

func (a *API) SubmitForApproval(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "submit_for_approval", nil)
}

func (a *API) Duplicate(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "duplicate", nil)
}

func (a *API) Archive(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "archive", nil)
}

func (a *API) Restore(ctx context.Context, id int) (*Course, error) {
	return a.action(ctx, id, "restore", nil)
}

// RequestAssignment asks for the logged in instructor to be assigned to a course.
func (a *API) RequestAssignment(ctx context.Context, id int) (*AssignmentRequest, error) {
	var out AssignmentRequest
	req := apiclient.Request{Method: http.MethodPost, Path: coursePath(id, "request-assignment/")}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Courses RequestAssignment] %d: %w", id, err)
	}
	return &out, nil
}
