package overview

import (
	"context"
	"fmt"

	"github.com/jrsteele09/tcms-client/apiclient"
)

const overviewPath = "/api/overview/"

type API struct {
	client apiclient.Doer
}

func NewAPI(client apiclient.Doer) *API {
	return &API{client: client}
}

func (a *API) fetch(ctx context.Context, op, path string, out any) error {
	if err := a.client.Do(ctx, apiclient.Request{Path: overviewPath + path}, out); err != nil {
		return fmt.Errorf("[Overview %s] %w", op, err)
	}
	return nil
}

// Overview returns the landing-page figures scoped to the caller's role.
func (a *API) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := a.fetch(ctx, "Overview", "overview/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := a.fetch(ctx, "DashboardStats", "dashboard/stats/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Instructor returns the logged in instructor's own overview.
func (a *API) Instructor(ctx context.Context) (*InstructorOverview, error) {
	var out InstructorOverview
	if err := a.fetch(ctx, "Instructor", "instructor/overview/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
