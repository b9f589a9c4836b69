// Package parameters provides the local backend for water test
// readings: batch submission, history queries, the latest value per
// parameter and single-reading deletion.
package parameters

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

func (r *Repository) Submit(ctx context.Context, userID string, in backend.ParameterSubmission) ([]entities.ParameterReading, error) {
	if len(in.Values) == 0 {
		return nil, &backend.ValidationError{Field: "values", Reason: "at least one parameter is required"}
	}

	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", in.TankID, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	measuredAt := time.Now().UTC()
	if in.MeasuredAt != nil {
		measuredAt = *in.MeasuredAt
	}

	readings := make([]entities.ParameterReading, 0, len(in.Values))
	for paramType, value := range in.Values {
		readings = append(readings, entities.ParameterReading{
			ID:            uuid.NewString(),
			TankID:        in.TankID,
			UserID:        userID,
			ParameterType: paramType,
			Value:         value,
			MeasuredAt:    measuredAt,
		})
	}
	if err := r.db.WithContext(ctx).Create(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *Repository) History(ctx context.Context, userID string, f backend.ParameterFilter) ([]entities.ParameterReading, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.ParameterType != "" {
		q = q.Where("parameter_type = ?", f.ParameterType)
	}
	if f.From != nil {
		q = q.Where("measured_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("measured_at <= ?", *f.To)
	}

	var readings []entities.ParameterReading
	err := q.Order("measured_at ASC").Find(&readings).Error
	return readings, err
}

func (r *Repository) Latest(ctx context.Context, userID, tankID string) (map[string]entities.ParameterReading, error) {
	var readings []entities.ParameterReading
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tank_id = ?", userID, tankID).
		Order("measured_at ASC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	// Ascending order means the last seen reading per type wins.
	latest := make(map[string]entities.ParameterReading, len(readings))
	for _, reading := range readings {
		latest[reading.ParameterType] = reading
	}
	return latest, nil
}

func (r *Repository) DeleteReading(ctx context.Context, userID, tankID, parameterType string, measuredAt time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tank_id = ? AND parameter_type = ? AND measured_at = ?",
			userID, tankID, parameterType, measuredAt).
		Delete(&entities.ParameterReading{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}
