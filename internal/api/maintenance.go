package api

import (
	"context"
	"net/http"
	"time"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type MaintenanceAdapter struct {
	client *Client
}

func NewMaintenanceAdapter(client *Client) *MaintenanceAdapter {
	return &MaintenanceAdapter{client: client}
}

func (a *MaintenanceAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.MaintenanceReminder, error) {
	var reminders []entities.MaintenanceReminder
	err := a.client.do(ctx, http.MethodGet, "/maintenance", listQuery(f), nil, &reminders)
	return reminders, err
}

func (a *MaintenanceAdapter) Get(ctx context.Context, _ string, id string) (*entities.MaintenanceReminder, error) {
	var reminder entities.MaintenanceReminder
	if err := a.client.do(ctx, http.MethodGet, "/maintenance/"+id, nil, nil, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (a *MaintenanceAdapter) Create(ctx context.Context, _ string, in backend.MaintenanceInput) (*entities.MaintenanceReminder, error) {
	var reminder entities.MaintenanceReminder
	if err := a.client.do(ctx, http.MethodPost, "/maintenance", nil, in, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (a *MaintenanceAdapter) Update(ctx context.Context, _ string, id string, p backend.MaintenancePatch) (*entities.MaintenanceReminder, error) {
	body := map[string]any{}
	p.EquipmentID.Apply(body, "equipment_id")
	put(body, "title", p.Title)
	put(body, "description", p.Description)
	put(body, "frequency_days", p.FrequencyDays)
	p.NextDueDate.Apply(body, "next_due_date")
	put(body, "is_active", p.IsActive)

	var reminder entities.MaintenanceReminder
	if err := a.client.do(ctx, http.MethodPatch, "/maintenance/"+id, nil, body, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (a *MaintenanceAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/maintenance/"+id, nil, nil, nil)
}

func (a *MaintenanceAdapter) Complete(ctx context.Context, _ string, id string, doneAt time.Time) (*entities.MaintenanceReminder, error) {
	body := map[string]any{"done_at": doneAt}
	var reminder entities.MaintenanceReminder
	if err := a.client.do(ctx, http.MethodPost, "/maintenance/"+id+"/complete", nil, body, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}
