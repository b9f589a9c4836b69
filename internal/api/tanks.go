package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

// TankAdapter implements backend.TankStore against the service. The
// userID argument of the shared contract is unused here: the service
// resolves the owner from the bearer token.
type TankAdapter struct {
	client *Client
}

func NewTankAdapter(client *Client) *TankAdapter {
	return &TankAdapter{client: client}
}

func (a *TankAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Tank, error) {
	var tanks []entities.Tank
	err := a.client.do(ctx, http.MethodGet, "/tanks", listQuery(f), nil, &tanks)
	return tanks, err
}

func (a *TankAdapter) Get(ctx context.Context, _ string, id string) (*entities.Tank, error) {
	var tank entities.Tank
	if err := a.client.do(ctx, http.MethodGet, "/tanks/"+id, nil, nil, &tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (a *TankAdapter) Create(ctx context.Context, _ string, in backend.TankInput) (*entities.Tank, error) {
	var tank entities.Tank
	if err := a.client.do(ctx, http.MethodPost, "/tanks", nil, in, &tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (a *TankAdapter) Update(ctx context.Context, _ string, id string, p backend.TankPatch) (*entities.Tank, error) {
	body := map[string]any{}
	put(body, "name", p.Name)
	p.DisplayVolumeLiters.Apply(body, "display_volume_liters")
	p.SumpVolumeLiters.Apply(body, "sump_volume_liters")
	put(body, "water_type", p.WaterType)
	put(body, "aquarium_subtype", p.AquariumSubtype)
	put(body, "description", p.Description)
	put(body, "image_url", p.ImageURL)
	p.SetupDate.Apply(body, "setup_date")
	p.ElectricityCostPerDay.Apply(body, "electricity_cost_per_day")
	put(body, "has_refugium", p.HasRefugium)
	p.RefugiumVolumeLiters.Apply(body, "refugium_volume_liters")
	put(body, "refugium_type", p.RefugiumType)
	put(body, "refugium_algae", p.RefugiumAlgae)
	p.RefugiumLightingHours.Apply(body, "refugium_lighting_hours")
	put(body, "refugium_notes", p.RefugiumNotes)

	var tank entities.Tank
	if err := a.client.do(ctx, http.MethodPatch, "/tanks/"+id, nil, body, &tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (a *TankAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/tanks/"+id, nil, nil, nil)
}

func (a *TankAdapter) SetArchived(ctx context.Context, _ string, id string, archived bool) (*entities.Tank, error) {
	body := map[string]any{"is_archived": archived}
	var tank entities.Tank
	if err := a.client.do(ctx, http.MethodPost, "/tanks/"+id+"/archive", nil, body, &tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (a *TankAdapter) SetSharing(ctx context.Context, _ string, id string, enabled bool) (*entities.Tank, error) {
	body := map[string]any{"share_enabled": enabled}
	var tank entities.Tank
	if err := a.client.do(ctx, http.MethodPost, "/tanks/"+id+"/share", nil, body, &tank); err != nil {
		return nil, err
	}
	return &tank, nil
}

func (a *TankAdapter) AddEvent(ctx context.Context, _ string, tankID string, in backend.TankEventInput) (*entities.TankEvent, error) {
	var event entities.TankEvent
	if err := a.client.do(ctx, http.MethodPost, "/tanks/"+tankID+"/events", nil, in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (a *TankAdapter) DeleteEvent(ctx context.Context, _ string, tankID, eventID string) error {
	return a.client.do(ctx, http.MethodDelete, "/tanks/"+tankID+"/events/"+eventID, nil, nil, nil)
}
