package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type ConsumableAdapter struct {
	client *Client
}

func NewConsumableAdapter(client *Client) *ConsumableAdapter {
	return &ConsumableAdapter{client: client}
}

func (a *ConsumableAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Consumable, error) {
	var items []entities.Consumable
	err := a.client.do(ctx, http.MethodGet, "/consumables", listQuery(f), nil, &items)
	return items, err
}

func (a *ConsumableAdapter) Get(ctx context.Context, _ string, id string) (*entities.Consumable, error) {
	var item entities.Consumable
	if err := a.client.do(ctx, http.MethodGet, "/consumables/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *ConsumableAdapter) Create(ctx context.Context, _ string, in backend.ConsumableInput) (*entities.Consumable, error) {
	var item entities.Consumable
	if err := a.client.do(ctx, http.MethodPost, "/consumables", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *ConsumableAdapter) Update(ctx context.Context, _ string, id string, p backend.ConsumablePatch) (*entities.Consumable, error) {
	body := map[string]any{}
	put(body, "name", p.Name)
	put(body, "consumable_type", p.ConsumableType)
	put(body, "brand", p.Brand)
	put(body, "product_name", p.ProductName)
	p.QuantityOnHand.Apply(body, "quantity_on_hand")
	put(body, "quantity_unit", p.QuantityUnit)
	p.PurchaseDate.Apply(body, "purchase_date")
	put(body, "purchase_price", p.PurchasePrice)
	put(body, "purchase_url", p.PurchaseURL)
	p.ExpirationDate.Apply(body, "expiration_date")
	put(body, "status", p.Status)
	put(body, "notes", p.Notes)

	var item entities.Consumable
	if err := a.client.do(ctx, http.MethodPatch, "/consumables/"+id, nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *ConsumableAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/consumables/"+id, nil, nil, nil)
}

func (a *ConsumableAdapter) LogUsage(ctx context.Context, _ string, id string, in backend.UsageInput) (*entities.Consumable, error) {
	var item entities.Consumable
	if err := a.client.do(ctx, http.MethodPost, "/consumables/"+id+"/usage", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
