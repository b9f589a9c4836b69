package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
)

type AdminAdapter struct {
	client *Client
}

func NewAdminAdapter(client *Client) *AdminAdapter {
	return &AdminAdapter{client: client}
}

func (a *AdminAdapter) SystemStats(ctx context.Context) (*backend.AdminStats, error) {
	var stats backend.AdminStats
	if err := a.client.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
