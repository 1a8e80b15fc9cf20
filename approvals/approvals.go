// Package approvals covers the two approval queues: course approvals raised when a course is
// submitted, and general approvals raised by centers.
package approvals

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/courses"
)

const (
	courseApprovalsPath = "/api/course-approvals/"
	approvalsPath       = "/api/approvals/"
)

type UserRef struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CourseApproval struct {
	ID                 int            `json:"id"`
	Course             int            `json:"course"`
	CourseDetails      courses.Course `json:"course_details"`
	RequestedBy        int            `json:"requested_by"`
	RequestedByDetails UserRef        `json:"requested_by_details"`
	ApprovalStatus     string         `json:"approval_status"`
	Comments           *string        `json:"comments,omitempty"`
	ApprovedBy         *int           `json:"approved_by,omitempty"`
	ApprovedByDetails  *UserRef       `json:"approved_by_details,omitempty"`
	ApprovedAt         *time.Time     `json:"approved_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}

type CreateCourseApproval struct {
	Course   int    `json:"course"`
	Comments string `json:"comments,omitempty"`
}

// Approval is a general request raised by a center
type Approval struct {
	ID            int     `json:"id"`
	Type          string  `json:"type"`
	Center        string  `json:"center"`
	RequestedBy   UserRef `json:"requested_by"`
	Description   string  `json:"description"`
	DateRequested string  `json:"date_requested"`
	Priority      string  `json:"priority"`
	Status        string  `json:"status"`
}

type CreateApproval struct {
	Type        string `json:"type"`
	Center      string `json:"center"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Decision is the verdict on a general approval.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func (a *API) List(ctx context.Context) ([]CourseApproval, error) {
	var out []CourseApproval
	if err := a.client.Do(ctx, apiclient.Request{Path: courseApprovalsPath}, &out); err != nil {
		return nil, fmt.Errorf("[Approvals List] %w", err)
	}
	return out, nil
}

func (a *API) Mine(ctx context.Context) ([]CourseApproval, error) {
	var out []CourseApproval
	if err := a.client.Do(ctx, apiclient.Request{Path: courseApprovalsPath + "my/"}, &out); err != nil {
		return nil, fmt.Errorf("[Approvals Mine] %w", err)
	}
	return out, nil
}

func (a *API) Create(ctx context.Context, in CreateCourseApproval) (*CourseApproval, error) {
	var out CourseApproval
	req := apiclient.Request{Method: http.MethodPost, Path: courseApprovalsPath, Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Approvals Create] course %d: %w", in.Course, err)
	}
	return &out, nil
}

func (a *API) courseApprovalAction(ctx context.Context, id int, action string, body any) (*CourseApproval, error) {
	var out CourseApproval
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("%s%d/%s/", courseApprovalsPath, id, action),
		Body:   body,
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Approvals %s] %d: %w", action, id, err)
	}
	return &out, nil
}

func (a *API) Approve(ctx context.Context, id int) (*CourseApproval, error) {
	return a.courseApprovalAction(ctx, id, "approve", nil)
}

func (a *API) Reject(ctx context.Context, id int) (*CourseApproval, error) {
	return a.courseApprovalAction(ctx, id, "reject", nil)
}

// RequestChanges sends a course back to its author with comments.
func (a *API) RequestChanges(ctx context.Context, id int, comments string) (*CourseApproval, error) {
	return a.courseApprovalAction(ctx, id, "request_changes", map[string]string{"comments": comments})
}

func (a *API) ListGeneral(ctx context.Context) ([]Approval, error) {
	var out []Approval
	if err := a.client.Do(ctx, apiclient.Request{Path: approvalsPath}, &out); err != nil {
		return nil, fmt.Errorf("[Approvals ListGeneral] %w", err)
	}
	return out, nil
}

func (a *API) MineGeneral(ctx context.Context) ([]Approval, error) {
	var out []Approval
	if err := a.client.Do(ctx, apiclient.Request{Path: approvalsPath + "my/"}, &out); err != nil {
		return nil, fmt.Errorf("[Approvals MineGeneral] %w", err)
	}
	return out, nil
}

func (a *API) CreateGeneral(ctx context.Context, in CreateApproval) (*Approval, error) {
	var out Approval
	req := apiclient.Request{Method: http.MethodPost, Path: approvalsPath, Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Approvals CreateGeneral] %w", err)
	}
	return &out, nil
}

// UpdateStatus approves or rejects a general approval.
func (a *API) UpdateStatus(ctx context.Context, id int, decision Decision) (*Approval, error) {
	if decision != Approve && decision != Reject {
		return nil, fmt.Errorf("[Approvals UpdateStatus] unknown decision %q", decision)
	}
	var out Approval
	req := apiclient.Request{Method: http.MethodPut, Path: fmt.Sprintf("%s%d/%s/", approvalsPath, id, decision)}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Approvals UpdateStatus] %d: %w", id, err)
	}
	return &out, nil
}
