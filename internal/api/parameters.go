package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type ParameterAdapter struct {
	client *Client
}

func NewParameterAdapter(client *Client) *ParameterAdapter {
	return &ParameterAdapter{client: client}
}

func (a *ParameterAdapter) Submit(ctx context.Context, _ string, in backend.ParameterSubmission) ([]entities.ParameterReading, error) {
	var readings []entities.ParameterReading
	if err := a.client.do(ctx, http.MethodPost, "/parameters", nil, in, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (a *ParameterAdapter) History(ctx context.Context, _ string, f backend.ParameterFilter) ([]entities.ParameterReading, error) {
	q := url.Values{}
	if f.TankID != "" {
		q.Set("tank_id", f.TankID)
	}
	if f.ParameterType != "" {
		q.Set("parameter_type", f.ParameterType)
	}
	if f.From != nil {
		q.Set("from", f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.Format(time.RFC3339))
	}

	var readings []entities.ParameterReading
	err := a.client.do(ctx, http.MethodGet, "/parameters", q, nil, &readings)
	return readings, err
}

func (a *ParameterAdapter) Latest(ctx context.Context, _ string, tankID string) (map[string]entities.ParameterReading, error) {
	q := url.Values{}
	q.Set("tank_id", tankID)

	var latest map[string]entities.ParameterReading
	if err := a.client.do(ctx, http.MethodGet, "/parameters/latest", q, nil, &latest); err != nil {
		return nil, err
	}
	return latest, nil
}

func (a *ParameterAdapter) DeleteReading(ctx context.Context, _ string, tankID, parameterType string, measuredAt time.Time) error {
	q := url.Values{}
	q.Set("tank_id", tankID)
	q.Set("parameter_type", parameterType)
	q.Set("measured_at", measuredAt.Format(time.RFC3339))
	return a.client.do(ctx, http.MethodDelete, "/parameters", q, nil, nil)
}
