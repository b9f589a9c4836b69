// Package lighting provides the local backend for lighting schedules.
// The hour-keyed intensity grid is a serialized column merged hour-wise
// on partial update.
package lighting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.LightingSchedule, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}

	var schedules []entities.LightingSchedule
	err := q.Order("created_at ASC").Find(&schedules).Error
	return schedules, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.LightingSchedule, error) {
	var schedule entities.LightingSchedule
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.LightingInput) (*entities.LightingSchedule, error) {
	if in.Name == "" {
		return nil, &backend.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(in.Channels) == 0 {
		return nil, &backend.ValidationError{Field: "channels", Reason: "at least one channel required"}
	}

	schedule := &entities.LightingSchedule{
		ID:           uuid.NewString(),
		TankID:       in.TankID,
		UserID:       userID,
		Name:         in.Name,
		Description:  in.Description,
		Channels:     in.Channels,
		ScheduleData: in.ScheduleData,
		IsActive:     in.IsActive,
		Notes:        in.Notes,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.IsActive {
			if err := deactivateSiblings(tx, userID, in.TankID, ""); err != nil {
				return err
			}
		}
		return tx.Create(schedule).Error
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.LightingPatch) (*entities.LightingSchedule, error) {
	schedule, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Channels != nil {
		updates["channels"] = p.Channels
	}
	if p.ScheduleData != nil {
		merged := entities.IntensityMap{}
		for hour, levels := range schedule.ScheduleData {
			merged[hour] = levels
		}
		for hour, levels := range p.ScheduleData {
			merged[hour] = levels
		}
		updates["schedule_data"] = merged
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.IsActive != nil {
			updates["is_active"] = *p.IsActive
			if *p.IsActive {
				if err := deactivateSiblings(tx, userID, schedule.TankID, id); err != nil {
					return err
				}
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(schedule).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.LightingSchedule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// Activate marks the schedule active; only one schedule per tank may be
// active, so siblings are deactivated in the same transaction.
func (r *Repository) Activate(ctx context.Context, userID, id string) (*entities.LightingSchedule, error) {
	schedule, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateSiblings(tx, userID, schedule.TankID, id); err != nil {
			return err
		}
		return tx.Model(schedule).Update("is_active", true).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

func deactivateSiblings(tx *gorm.DB, userID, tankID, exceptID string) error {
	q := tx.Model(&entities.LightingSchedule{}).
		Where("user_id = ? AND tank_id = ? AND is_active = ?", userID, tankID, true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_active", false).Error
}
