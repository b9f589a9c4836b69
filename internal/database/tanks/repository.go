// Package tanks provides the local backend for tank records: CRUD,
// archival, sharing tokens, the timeline of tank events and the
// cascade that removes everything scoped to a deleted tank.
package tanks

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

// Repository handles all tank database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tanks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Tank, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !f.IncludeArchived {
		q = q.Where("is_archived = ?", false)
	}
	if f.Type != "" {
		q = q.Where("water_type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var tanks []entities.Tank
	err := q.Order("created_at ASC").Find(&tanks).Error
	return tanks, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Tank, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_date DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tank, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.TankInput) (*entities.Tank, error) {
	if in.Name == "" {
		return nil, &backend.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	waterType := in.WaterType
	if waterType == "" {
		waterType = entities.WaterTypeSaltwater
	}

	tank := &entities.Tank{
		ID:                    uuid.NewString(),
		UserID:                userID,
		Name:                  in.Name,
		DisplayVolumeLiters:   in.DisplayVolumeLiters,
		SumpVolumeLiters:      in.SumpVolumeLiters,
		TotalVolumeLiters:     totalVolume(in.DisplayVolumeLiters, in.SumpVolumeLiters),
		WaterType:             waterType,
		AquariumSubtype:       in.AquariumSubtype,
		Description:           in.Description,
		ImageURL:              in.ImageURL,
		SetupDate:             in.SetupDate,
		ElectricityCostPerDay: in.ElectricityCostPerDay,
		HasRefugium:           in.HasRefugium,
		RefugiumVolumeLiters:  in.RefugiumVolumeLiters,
		RefugiumType:          in.RefugiumType,
		RefugiumAlgae:         in.RefugiumAlgae,
		RefugiumLightingHours: in.RefugiumLightingHours,
		RefugiumNotes:         in.RefugiumNotes,
	}
	if err := r.db.WithContext(ctx).Create(tank).Error; err != nil {
		return nil, err
	}
	return tank, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.TankPatch) (*entities.Tank, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	p.DisplayVolumeLiters.Apply(updates, "display_volume_liters")
	p.SumpVolumeLiters.Apply(updates, "sump_volume_liters")
	if p.WaterType != nil {
		updates["water_type"] = *p.WaterType
	}
	if p.AquariumSubtype != nil {
		updates["aquarium_subtype"] = *p.AquariumSubtype
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	p.SetupDate.Apply(updates, "setup_date")
	p.ElectricityCostPerDay.Apply(updates, "electricity_cost_per_day")
	if p.HasRefugium != nil {
		updates["has_refugium"] = *p.HasRefugium
	}
	p.RefugiumVolumeLiters.Apply(updates, "refugium_volume_liters")
	if p.RefugiumType != nil {
		updates["refugium_type"] = *p.RefugiumType
	}
	if p.RefugiumAlgae != nil {
		updates["refugium_algae"] = *p.RefugiumAlgae
	}
	p.RefugiumLightingHours.Apply(updates, "refugium_lighting_hours")
	if p.RefugiumNotes != nil {
		updates["refugium_notes"] = *p.RefugiumNotes
	}

	// Recompute the derived total from what the volumes will be after
	// this update, so a patch touching only one volume still yields a
	// correct total.
	display := tank.DisplayVolumeLiters
	if p.DisplayVolumeLiters.IsSet() {
		display = p.DisplayVolumeLiters.Ptr()
	}
	sump := tank.SumpVolumeLiters
	if p.SumpVolumeLiters.IsSet() {
		sump = p.SumpVolumeLiters.Ptr()
	}
	updates["total_volume_liters"] = totalVolume(display, sump)

	if err := r.db.WithContext(ctx).Model(&tank).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tank entities.Tank
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&tank).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backend.ErrNotFound
		}
		if err != nil {
			return err
		}

		// Cascade over everything scoped to the tank.
		if err := tx.Where("consumable_id IN (?)",
			tx.Model(&entities.Consumable{}).Select("id").Where("tank_id = ?", id),
		).Delete(&entities.ConsumableUsage{}).Error; err != nil {
			return err
		}
		for _, model := range []any{
			&entities.TankEvent{},
			&entities.Note{},
			&entities.Livestock{},
			&entities.Equipment{},
			&entities.Consumable{},
			&entities.ICPTest{},
			&entities.LightingSchedule{},
			&entities.MaintenanceReminder{},
			&entities.ParameterReading{},
			&entities.FeedingSchedule{},
			&entities.FeedingLog{},
			&entities.Expense{},
			&entities.Budget{},
			&entities.Photo{},
		} {
			if err := tx.Where("tank_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&tank).Error
	})
}

func (r *Repository) SetArchived(ctx context.Context, userID, id string, archived bool) (*entities.Tank, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&tank).Update("is_archived", archived).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) SetSharing(ctx context.Context, userID, id string, enabled bool) (*entities.Tank, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"share_enabled": enabled}
	if enabled && tank.ShareToken == nil {
		token, err := generateShareToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate share token: %w", err)
		}
		updates["share_token"] = token
	}
	if err := r.db.WithContext(ctx).Model(&tank).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) AddEvent(ctx context.Context, userID, tankID string, in backend.TankEventInput) (*entities.TankEvent, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", tankID, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, &backend.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	event := &entities.TankEvent{
		ID:          uuid.NewString(),
		TankID:      tankID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		EventDate:   in.EventDate,
		EventType:   in.EventType,
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, userID, tankID, eventID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND tank_id = ? AND user_id = ?", eventID, tankID, userID).
		Delete(&entities.TankEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func totalVolume(display, sump *float64) float64 {
	var total float64
	if display != nil {
		total += *display
	}
	if sump != nil {
		total += *sump
	}
	return total
}

func generateShareToken() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
