// Package maintenance provides the local backend for recurring
// maintenance reminders.
package maintenance

import (
	"context"
	"errors"
	"time"

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

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.MaintenanceReminder, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !f.IncludeArchived {
		q = q.Where("is_active = ?", true)
	}
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.From != nil {
		q = q.Where("next_due_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("next_due_date <= ?", *f.To)
	}

	var reminders []entities.MaintenanceReminder
	err := q.Order("next_due_date ASC").Find(&reminders).Error
	return reminders, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.MaintenanceReminder, error) {
	var reminder entities.MaintenanceReminder
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.MaintenanceInput) (*entities.MaintenanceReminder, error) {
	if in.Title == "" {
		return nil, &backend.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.FrequencyDays <= 0 {
		return nil, &backend.ValidationError{Field: "frequency_days", Reason: "must be positive"}
	}

	nextDue := in.NextDueDate
	if nextDue == nil {
		due := time.Now().AddDate(0, 0, in.FrequencyDays)
		nextDue = &due
	}

	reminder := &entities.MaintenanceReminder{
		ID:            uuid.NewString(),
		TankID:        in.TankID,
		UserID:        userID,
		EquipmentID:   in.EquipmentID,
		Title:         in.Title,
		Description:   in.Description,
		FrequencyDays: in.FrequencyDays,
		NextDueDate:   nextDue,
		IsActive:      true,
	}
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.MaintenancePatch) (*entities.MaintenanceReminder, error) {
	reminder, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	p.EquipmentID.Apply(updates, "equipment_id")
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.FrequencyDays != nil {
		if *p.FrequencyDays <= 0 {
			return nil, &backend.ValidationError{Field: "frequency_days", Reason: "must be positive"}
		}
		updates["frequency_days"] = *p.FrequencyDays
	}
	p.NextDueDate.Apply(updates, "next_due_date")
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(reminder).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.MaintenanceReminder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// Complete stamps the chore done and advances the next due date by the
// reminder's frequency, measured from the completion time.
func (r *Repository) Complete(ctx context.Context, userID, id string, doneAt time.Time) (*entities.MaintenanceReminder, error) {
	reminder, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	nextDue := doneAt.AddDate(0, 0, reminder.FrequencyDays)
	updates := map[string]any{
		"last_done_date": doneAt,
		"next_due_date":  nextDue,
	}
	if err := r.db.WithContext(ctx).Model(reminder).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}
