// Package binding resolves the backend once at startup: it reads the
// configured mode and wires every store interface to either the local
// SQLite repositories or the remote API adapters. Screens receive the
// resolved backend.Backend and never branch on mode again.
package binding

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/reeflog/reeflog/internal/api"
	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/config"
	"github.com/reeflog/reeflog/internal/database"
	"github.com/reeflog/reeflog/internal/database/admin"
	"github.com/reeflog/reeflog/internal/database/consumables"
	"github.com/reeflog/reeflog/internal/database/equipment"
	"github.com/reeflog/reeflog/internal/database/feeding"
	"github.com/reeflog/reeflog/internal/database/finances"
	"github.com/reeflog/reeflog/internal/database/icptests"
	"github.com/reeflog/reeflog/internal/database/lighting"
	"github.com/reeflog/reeflog/internal/database/livestock"
	"github.com/reeflog/reeflog/internal/database/maintenance"
	"github.com/reeflog/reeflog/internal/database/notes"
	"github.com/reeflog/reeflog/internal/database/parameters"
	"github.com/reeflog/reeflog/internal/database/photos"
	"github.com/reeflog/reeflog/internal/database/tanks"
	"github.com/reeflog/reeflog/internal/queue"
	"github.com/reeflog/reeflog/internal/tokenstore"
)

// Runtime is everything Initialize wires up: the resolved backend plus
// the long-lived pieces the entrypoint owns (the API client for auth
// calls, the queue scheduler in remote mode).
type Runtime struct {
	Backend *backend.Backend

	// Client is the shared API client. Present in both modes: local
	// mode still uses it for public share profiles.
	Client *api.Client

	// Scheduler drains the offline queue. Nil in local mode.
	Scheduler *queue.Scheduler

	closers []func() error
}

// Close releases the runtime's resources in reverse wiring order.
func (r *Runtime) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Binder performs one-time backend resolution. Concurrent and repeated
// Initialize calls coalesce onto the first one; the chosen mode holds
// for the process lifetime.
type Binder struct {
	once sync.Once
	rt   *Runtime
	err  error
}

// Initialize resolves the backend for the configured mode. The first
// call does the wiring; every later call returns the same runtime (or
// the same error) without re-binding.
func (b *Binder) Initialize(cfg *config.Config) (*Runtime, error) {
	b.once.Do(func() {
		b.rt, b.err = build(cfg)
	})
	return b.rt, b.err
}

func build(cfg *config.Config) (*Runtime, error) {
	log.Printf("Initializing %s backend", cfg.App.Mode)

	tokens, err := tokenstore.New(cfg.Session.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	switch cfg.App.Mode {
	case backend.ModeRemote:
		return buildRemote(cfg, tokens)
	default:
		return buildLocal(cfg, tokens)
	}
}

func buildLocal(cfg *config.Config, tokens *tokenstore.Store) (*Runtime, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	photosDir := filepath.Join(filepath.Dir(cfg.Database.Path), "photos")
	photoRepo, err := photos.NewRepository(db.DB, photosDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init photo storage: %w", err)
	}

	// No queue in local mode: writes land in SQLite directly, so the
	// client (used only for public shares) fails plainly when offline.
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokens, nil)

	be := &backend.Backend{
		Mode:        backend.ModeLocal,
		Tanks:       tanks.NewRepository(db.DB),
		Notes:       notes.NewRepository(db.DB),
		Livestock:   livestock.NewRepository(db.DB),
		Equipment:   equipment.NewRepository(db.DB),
		Consumables: consumables.NewRepository(db.DB),
		ICPTests:    icptests.NewRepository(db.DB),
		Lighting:    lighting.NewRepository(db.DB),
		Maintenance: maintenance.NewRepository(db.DB),
		Parameters:  parameters.NewRepository(db.DB),
		Feeding:     feeding.NewRepository(db.DB),
		Finances:    finances.NewRepository(db.DB),
		Photos:      photoRepo,
		Share:       api.NewShareAdapter(client),
		Admin:       admin.NewRepository(),
	}

	return &Runtime{
		Backend: be,
		Client:  client,
		closers: []func() error{db.Close},
	}, nil
}

func buildRemote(cfg *config.Config, tokens *tokenstore.Store) (*Runtime, error) {
	store, err := queue.NewStore(cfg.Queue.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open offline queue: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokens, store)
	scheduler := queue.NewScheduler(queue.NewDrainer(store, client))

	be := &backend.Backend{
		Mode:        backend.ModeRemote,
		Tanks:       api.NewTankAdapter(client),
		Notes:       api.NewNoteAdapter(client),
		Livestock:   api.NewLivestockAdapter(client),
		Equipment:   api.NewEquipmentAdapter(client),
		Consumables: api.NewConsumableAdapter(client),
		ICPTests:    api.NewICPTestAdapter(client),
		Lighting:    api.NewLightingAdapter(client),
		Maintenance: api.NewMaintenanceAdapter(client),
		Parameters:  api.NewParameterAdapter(client),
		Feeding:     api.NewFeedingAdapter(client),
		Finances:    api.NewFinanceAdapter(client),
		Photos:      api.NewPhotoAdapter(client),
		Share:       api.NewShareAdapter(client),
		Admin:       api.NewAdminAdapter(client),
	}

	return &Runtime{
		Backend:   be,
		Client:    client,
		Scheduler: scheduler,
		closers:   []func() error{store.Close},
	}, nil
}
