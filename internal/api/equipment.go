package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type EquipmentAdapter struct {
	client *Client
}

func NewEquipmentAdapter(client *Client) *EquipmentAdapter {
	return &EquipmentAdapter{client: client}
}

func (a *EquipmentAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Equipment, error) {
	var items []entities.Equipment
	err := a.client.do(ctx, http.MethodGet, "/equipment", listQuery(f), nil, &items)
	return items, err
}

func (a *EquipmentAdapter) Get(ctx context.Context, _ string, id string) (*entities.Equipment, error) {
	var item entities.Equipment
	if err := a.client.do(ctx, http.MethodGet, "/equipment/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *EquipmentAdapter) Create(ctx context.Context, _ string, in backend.EquipmentInput) (*entities.Equipment, error) {
	var item entities.Equipment
	if err := a.client.do(ctx, http.MethodPost, "/equipment", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *EquipmentAdapter) Update(ctx context.Context, _ string, id string, p backend.EquipmentPatch) (*entities.Equipment, error) {
	body := map[string]any{}
	put(body, "name", p.Name)
	put(body, "equipment_type", p.EquipmentType)
	put(body, "manufacturer", p.Manufacturer)
	put(body, "model", p.Model)
	// The service merges specs key-wise, matching the local adapter.
	if p.Specs != nil {
		body["specs"] = p.Specs
	}
	p.PurchaseDate.Apply(body, "purchase_date")
	put(body, "purchase_price", p.PurchasePrice)
	put(body, "condition", p.Condition)
	put(body, "notes", p.Notes)

	var item entities.Equipment
	if err := a.client.do(ctx, http.MethodPatch, "/equipment/"+id, nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *EquipmentAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/equipment/"+id, nil, nil, nil)
}

func (a *EquipmentAdapter) ConvertToConsumable(ctx context.Context, _ string, id string, in backend.ConvertToConsumableInput) (*entities.Consumable, error) {
	var item entities.Consumable
	if err := a.client.do(ctx, http.MethodPost, "/equipment/"+id+"/convert", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
