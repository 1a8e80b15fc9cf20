package users

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const (
	usersPath       = "/api/users/"
	mePath          = "/api/users/me/"
	instructorsPath = "/api/instructors/"
	accountPath     = "/api/account/status/"
)

// API wraps the user management endpoints.
type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func userPath(id int, suffix string) string {
	return fmt.Sprintf("%s%d/%s", usersPath, id, suffix)
}

func (a *API) List(ctx context.Context) ([]User, error) {
	return a.ListByRole(ctx, "")
}

// ListByRole filters users by role. An empty role lists everyone.
func (a *API) ListByRole(ctx context.Context, role RoleType) ([]User, error) {
	var out []User
	req := apiclient.Request{
		Path:  usersPath,
		Query: apiclient.NewParams().Set("role", string(role)).Values(),
	}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Users List] %w", err)
	}
	return out, nil
}

func (a *API) Get(ctx context.Context, id int) (*User, error) {
	var out User
	if err := a.client.Do(ctx, apiclient.Request{Path: userPath(id, "")}, &out); err != nil {
		return nil, fmt.Errorf("[Users Get] %d: %w", id, err)
	}
	return &out, nil
}

// Me returns the profile of the logged in user.
func (a *API) Me(ctx context.Context) (*User, error) {
	var out User
	if err := a.client.Do(ctx, apiclient.Request{Path: mePath}, &out); err != nil {
		return nil, fmt.Errorf("[Users Me] %w", err)
	}
	return &out, nil
}

func (a *API) Create(ctx context.Context, in CreateRequest) (*User, error) {
	var out User
	req := apiclient.Request{Method: http.MethodPost, Path: usersPath, Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Users Create] %s: %w", in.Email, err)
	}
	return &out, nil
}

func (a *API) Update(ctx context.Context, id int, in UpdateRequest) (*User, error) {
	var out User
	req := apiclient.Request{Method: http.MethodPatch, Path: userPath(id, ""), Body: in}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Users Update] %d: %w", id, err)
	}
	return &out, nil
}

func (a *API) Delete(ctx context.Context, id int) error {
	req := apiclient.Request{Method: http.MethodDelete, Path: userPath(id, "")}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Users Delete] %d: %w", id, err)
	}
	return nil
}

func (a *API) ChangePassword(ctx context.Context, id int, newPassword string) error {
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   userPath(id, "change-password/"),
		Body:   map[string]string{"new_password": newPassword},
	}
	if err := a.client.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("[Users ChangePassword] %d: %w", id, err)
	}
	return nil
}

// Instructors lists instructor accounts. The endpoint may answer paginated or not.
func (a *API) Instructors(ctx context.Context) ([]User, error) {
	var out apiclient.List[User]
	if err := a.client.Do(ctx, apiclient.Request{Path: instructorsPath}, &out); err != nil {
		return nil, fmt.Errorf("[Users Instructors] %w", err)
	}
	return out, nil
}

// ToggleStatus activates or deactivates an instructor.
func (a *API) ToggleStatus(ctx context.Context, id int) (*ToggleStatusResult, error) {
	var out ToggleStatusResult
	req := apiclient.Request{Method: http.MethodPost, Path: userPath(id, "toggle-status/")}
	if err := a.client.Do(ctx, req, &out); err != nil {
		return nil, fmt.Errorf("[Users ToggleStatus] %d: %w", id, err)
	}
	return &out, nil
}

func (a *API) AccountStatus(ctx context.Context) (*AccountStatus, error) {
	var out AccountStatus
	if err := a.client.Do(ctx, apiclient.Request{Path: accountPath}, &out); err != nil {
		return nil, fmt.Errorf("[Users AccountStatus] %w", err)
	}
	return &out, nil
}
