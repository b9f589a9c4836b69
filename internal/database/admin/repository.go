// Package admin is the local stand-in for the remote-only admin
// surface. System-wide statistics aggregate across users on the
// service; a single-user on-device store has nothing meaningful to
// report, so the repository refuses cleanly instead of pretending.
package admin

import (
	"context"

	"github.com/reeflog/reeflog/internal/backend"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SystemStats(ctx context.Context) (*backend.AdminStats, error) {
	return nil, backend.ErrNotAvailableLocally
}
