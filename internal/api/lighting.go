package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type LightingAdapter struct {
	client *Client
}

func NewLightingAdapter(client *Client) *LightingAdapter {
	return &LightingAdapter{client: client}
}

func (a *LightingAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.LightingSchedule, error) {
	var schedules []entities.LightingSchedule
	err := a.client.do(ctx, http.MethodGet, "/lighting", listQuery(f), nil, &schedules)
	return schedules, err
}

func (a *LightingAdapter) Get(ctx context.Context, _ string, id string) (*entities.LightingSchedule, error) {
	var schedule entities.LightingSchedule
	if err := a.client.do(ctx, http.MethodGet, "/lighting/"+id, nil, nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *LightingAdapter) Create(ctx context.Context, _ string, in backend.LightingInput) (*entities.LightingSchedule, error) {
	var schedule entities.LightingSchedule
	if err := a.client.do(ctx, http.MethodPost, "/lighting", nil, in, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *LightingAdapter) Update(ctx context.Context, _ string, id string, p backend.LightingPatch) (*entities.LightingSchedule, error) {
	body := map[string]any{}
	put(body, "name", p.Name)
	put(body, "description", p.Description)
	if p.Channels != nil {
		body["channels"] = p.Channels
	}
	// Hour-wise merge happens server-side, same as the local adapter.
	if p.ScheduleData != nil {
		body["schedule_data"] = p.ScheduleData
	}
	put(body, "is_active", p.IsActive)
	put(body, "notes", p.Notes)

	var schedule entities.LightingSchedule
	if err := a.client.do(ctx, http.MethodPatch, "/lighting/"+id, nil, body, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *LightingAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/lighting/"+id, nil, nil, nil)
}

func (a *LightingAdapter) Activate(ctx context.Context, _ string, id string) (*entities.LightingSchedule, error) {
	var schedule entities.LightingSchedule
	if err := a.client.do(ctx, http.MethodPost, "/lighting/"+id+"/activate", nil, nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}
