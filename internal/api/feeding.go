package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type FeedingAdapter struct {
	client *Client
}

func NewFeedingAdapter(client *Client) *FeedingAdapter {
	return &FeedingAdapter{client: client}
}

func (a *FeedingAdapter) ListSchedules(ctx context.Context, _ string, f backend.ListFilter) ([]entities.FeedingSchedule, error) {
	var schedules []entities.FeedingSchedule
	err := a.client.do(ctx, http.MethodGet, "/feeding/schedules", listQuery(f), nil, &schedules)
	return schedules, err
}

func (a *FeedingAdapter) GetSchedule(ctx context.Context, _ string, id string) (*entities.FeedingSchedule, error) {
	var schedule entities.FeedingSchedule
	if err := a.client.do(ctx, http.MethodGet, "/feeding/schedules/"+id, nil, nil, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *FeedingAdapter) CreateSchedule(ctx context.Context, _ string, in backend.FeedingScheduleInput) (*entities.FeedingSchedule, error) {
	var schedule entities.FeedingSchedule
	if err := a.client.do(ctx, http.MethodPost, "/feeding/schedules", nil, in, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *FeedingAdapter) UpdateSchedule(ctx context.Context, _ string, id string, p backend.FeedingSchedulePatch) (*entities.FeedingSchedule, error) {
	body := map[string]any{}
	p.ConsumableID.Apply(body, "consumable_id")
	put(body, "food_name", p.FoodName)
	p.Quantity.Apply(body, "quantity")
	put(body, "quantity_unit", p.QuantityUnit)
	put(body, "frequency_hours", p.FrequencyHours)
	p.NextDue.Apply(body, "next_due")
	put(body, "is_active", p.IsActive)
	put(body, "notes", p.Notes)

	var schedule entities.FeedingSchedule
	if err := a.client.do(ctx, http.MethodPatch, "/feeding/schedules/"+id, nil, body, &schedule); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (a *FeedingAdapter) DeleteSchedule(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/feeding/schedules/"+id, nil, nil, nil)
}

func (a *FeedingAdapter) Feed(ctx context.Context, _ string, id string) (*entities.FeedingLog, error) {
	var log entities.FeedingLog
	if err := a.client.do(ctx, http.MethodPost, "/feeding/schedules/"+id+"/feed", nil, nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (a *FeedingAdapter) ListLogs(ctx context.Context, _ string, f backend.ListFilter) ([]entities.FeedingLog, error) {
	var logs []entities.FeedingLog
	err := a.client.do(ctx, http.MethodGet, "/feeding/logs", listQuery(f), nil, &logs)
	return logs, err
}

func (a *FeedingAdapter) CreateLog(ctx context.Context, _ string, in backend.FeedingLogInput) (*entities.FeedingLog, error) {
	var log entities.FeedingLog
	if err := a.client.do(ctx, http.MethodPost, "/feeding/logs", nil, in, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (a *FeedingAdapter) Overview(ctx context.Context, _ string, tankID string) (*backend.FeedingOverview, error) {
	q := url.Values{}
	q.Set("tank_id", tankID)

	var overview backend.FeedingOverview
	if err := a.client.do(ctx, http.MethodGet, "/feeding/overview", q, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
