package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

// ShareAdapter reads public shared tank profiles. Shared content only
// lives on the service, so this adapter is bound in both modes.
type ShareAdapter struct {
	client *Client
}

func NewShareAdapter(client *Client) *ShareAdapter {
	return &ShareAdapter{client: client}
}

func (a *ShareAdapter) GetPublicProfile(ctx context.Context, token string) (*entities.PublicTankProfile, error) {
	var profile entities.PublicTankProfile
	if err := a.client.do(ctx, http.MethodGet, "/shared/"+token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *ShareAdapter) DownloadPublicPhoto(ctx context.Context, token, photoID string) (*backend.Blob, error) {
	return a.client.getBlob(ctx, "/shared/"+token+"/photos/"+photoID)
}
