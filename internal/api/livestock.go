package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type LivestockAdapter struct {
	client *Client
}

func NewLivestockAdapter(client *Client) *LivestockAdapter {
	return &LivestockAdapter{client: client}
}

func (a *LivestockAdapter) List(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Livestock, error) {
	var items []entities.Livestock
	err := a.client.do(ctx, http.MethodGet, "/livestock", listQuery(f), nil, &items)
	return items, err
}

func (a *LivestockAdapter) Get(ctx context.Context, _ string, id string) (*entities.Livestock, error) {
	var item entities.Livestock
	if err := a.client.do(ctx, http.MethodGet, "/livestock/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *LivestockAdapter) Create(ctx context.Context, _ string, in backend.LivestockInput) (*entities.Livestock, error) {
	var item entities.Livestock
	if err := a.client.do(ctx, http.MethodPost, "/livestock", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *LivestockAdapter) Update(ctx context.Context, _ string, id string, p backend.LivestockPatch) (*entities.Livestock, error) {
	body := map[string]any{}
	put(body, "species_name", p.SpeciesName)
	put(body, "common_name", p.CommonName)
	put(body, "type", p.Type)
	put(body, "species_ref", p.SpeciesRef)
	put(body, "quantity", p.Quantity)
	put(body, "status", p.Status)
	p.StatusDate.Apply(body, "status_date")
	p.AddedDate.Apply(body, "added_date")
	put(body, "notes", p.Notes)

	var item entities.Livestock
	if err := a.client.do(ctx, http.MethodPatch, "/livestock/"+id, nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *LivestockAdapter) Delete(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/livestock/"+id, nil, nil, nil)
}

func (a *LivestockAdapter) SetArchived(ctx context.Context, _ string, id string, archived bool) (*entities.Livestock, error) {
	body := map[string]any{"is_archived": archived}
	var item entities.Livestock
	if err := a.client.do(ctx, http.MethodPost, "/livestock/"+id+"/archive", nil, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (a *LivestockAdapter) Split(ctx context.Context, _ string, id string, in backend.SplitInput) (*backend.SplitResult, error) {
	var result backend.SplitResult
	if err := a.client.do(ctx, http.MethodPost, "/livestock/"+id+"/split", nil, in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
