// Package feeding provides the local backend for feeding schedules and
// the feeding log. Marking a schedule fed advances its timing, writes a
// log entry and deducts linked consumable stock in one transaction.
package feeding

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

func (r *Repository) ListSchedules(ctx context.Context, userID string, f backend.ListFilter) ([]entities.FeedingSchedule, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if !f.IncludeArchived {
		q = q.Where("is_active = ?", true)
	}

	var schedules []entities.FeedingSchedule
	err := q.Order("next_due ASC").Find(&schedules).Error
	return schedules, err
}

func (r *Repository) GetSchedule(ctx context.Context, userID, id string) (*entities.FeedingSchedule, error) {
	var schedule entities.FeedingSchedule
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *Repository) CreateSchedule(ctx context.Context, userID string, in backend.FeedingScheduleInput) (*entities.FeedingSchedule, error) {
	if in.FoodName == "" {
		return nil, &backend.ValidationError{Field: "food_name", Reason: "must not be empty"}
	}
	frequency := in.FrequencyHours
	if frequency == 0 {
		frequency = 24
	}
	if frequency < 0 {
		return nil, &backend.ValidationError{Field: "frequency_hours", Reason: "must be positive"}
	}

	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", in.TankID, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.verifyConsumable(ctx, userID, in.ConsumableID); err != nil {
		return nil, err
	}

	nextDue := in.NextDue
	if nextDue == nil {
		due := time.Now().UTC().Add(time.Duration(frequency) * time.Hour)
		nextDue = &due
	}

	schedule := &entities.FeedingSchedule{
		ID:             uuid.NewString(),
		TankID:         in.TankID,
		UserID:         userID,
		ConsumableID:   in.ConsumableID,
		FoodName:       in.FoodName,
		Quantity:       in.Quantity,
		QuantityUnit:   in.QuantityUnit,
		FrequencyHours: frequency,
		NextDue:        nextDue,
		IsActive:       true,
		Notes:          in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *Repository) UpdateSchedule(ctx context.Context, userID, id string, p backend.FeedingSchedulePatch) (*entities.FeedingSchedule, error) {
	schedule, err := r.GetSchedule(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.ConsumableID.IsSet() {
		if err := r.verifyConsumable(ctx, userID, p.ConsumableID.Ptr()); err != nil {
			return nil, err
		}
	}
	if p.FrequencyHours != nil && *p.FrequencyHours <= 0 {
		return nil, &backend.ValidationError{Field: "frequency_hours", Reason: "must be positive"}
	}

	updates := map[string]any{}
	p.ConsumableID.Apply(updates, "consumable_id")
	if p.FoodName != nil {
		updates["food_name"] = *p.FoodName
	}
	p.Quantity.Apply(updates, "quantity")
	if p.QuantityUnit != nil {
		updates["quantity_unit"] = *p.QuantityUnit
	}
	if p.FrequencyHours != nil {
		updates["frequency_hours"] = *p.FrequencyHours
	}
	p.NextDue.Apply(updates, "next_due")
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(schedule).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetSchedule(ctx, userID, id)
}

// DeleteSchedule removes the schedule and detaches its log entries, so
// feeding history survives the plan that produced it.
func (r *Repository) DeleteSchedule(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.FeedingSchedule{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return backend.ErrNotFound
		}
		return tx.Model(&entities.FeedingLog{}).
			Where("schedule_id = ?", id).
			Update("schedule_id", nil).Error
	})
}

func (r *Repository) Feed(ctx context.Context, userID, id string) (*entities.FeedingLog, error) {
	schedule, err := r.GetSchedule(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nextDue := now.Add(time.Duration(schedule.FrequencyHours) * time.Hour)
	log := &entities.FeedingLog{
		ID:           uuid.NewString(),
		TankID:       schedule.TankID,
		UserID:       userID,
		ScheduleID:   &schedule.ID,
		FoodName:     schedule.FoodName,
		Quantity:     schedule.Quantity,
		QuantityUnit: schedule.QuantityUnit,
		FedAt:        now,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"last_fed": now, "next_due": nextDue}
		if err := tx.Model(&entities.FeedingSchedule{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		if schedule.ConsumableID == nil || schedule.Quantity == nil {
			return nil
		}
		return r.deductStock(tx, userID, *schedule.ConsumableID, *schedule.Quantity, schedule.QuantityUnit, schedule.FoodName, now)
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (r *Repository) ListLogs(ctx context.Context, userID string, f backend.ListFilter) ([]entities.FeedingLog, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.From != nil {
		q = q.Where("fed_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("fed_at <= ?", *f.To)
	}

	var logs []entities.FeedingLog
	err := q.Order("fed_at DESC").Find(&logs).Error
	return logs, err
}

func (r *Repository) CreateLog(ctx context.Context, userID string, in backend.FeedingLogInput) (*entities.FeedingLog, error) {
	if in.FoodName == "" {
		return nil, &backend.ValidationError{Field: "food_name", Reason: "must not be empty"}
	}

	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", in.TankID, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	fedAt := time.Now().UTC()
	if in.FedAt != nil {
		fedAt = *in.FedAt
	}

	log := &entities.FeedingLog{
		ID:           uuid.NewString(),
		TankID:       in.TankID,
		UserID:       userID,
		ScheduleID:   in.ScheduleID,
		FoodName:     in.FoodName,
		Quantity:     in.Quantity,
		QuantityUnit: in.QuantityUnit,
		FedAt:        fedAt,
		Notes:        in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, err
	}
	return log, nil
}

func (r *Repository) Overview(ctx context.Context, userID, tankID string) (*backend.FeedingOverview, error) {
	var tank entities.Tank
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", tankID, userID).First(&tank).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	overview := &backend.FeedingOverview{TankID: tankID}

	var active []entities.FeedingSchedule
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND tank_id = ? AND is_active = ?", userID, tankID, true).
		Order("next_due ASC").
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	overview.ActiveSchedules = len(active)
	for _, schedule := range active {
		if schedule.NextDue == nil {
			continue
		}
		if overview.NextDue == nil {
			overview.NextDue = schedule.NextDue
		}
		if schedule.NextDue.Before(now) {
			overview.OverdueCount++
		}
	}

	var recent []entities.FeedingLog
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND tank_id = ?", userID, tankID).
		Order("fed_at DESC").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	overview.RecentLogs = recent
	if len(recent) > 0 {
		overview.LastFed = &recent[0].FedAt
	}

	return overview, nil
}

func (r *Repository) verifyConsumable(ctx context.Context, userID string, consumableID *string) error {
	if consumableID == nil {
		return nil
	}
	var consumable entities.Consumable
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", *consumableID, userID).First(&consumable).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return backend.ErrNotFound
	}
	return err
}

// deductStock mirrors a dosing event: usage record, floor at zero,
// depleted at zero and low_stock below three feedings of headroom.
func (r *Repository) deductStock(tx *gorm.DB, userID, consumableID string, quantity float64, unit, foodName string, at time.Time) error {
	var consumable entities.Consumable
	err := tx.Where("id = ? AND user_id = ?", consumableID, userID).First(&consumable).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // food item was deleted; the feeding still counts
	}
	if err != nil {
		return err
	}

	usage := &entities.ConsumableUsage{
		ID:           uuid.NewString(),
		ConsumableID: consumableID,
		UserID:       userID,
		UsageDate:    at,
		QuantityUsed: quantity,
		QuantityUnit: unit,
		Notes:        "Feeding: " + foodName,
	}
	if err := tx.Create(usage).Error; err != nil {
		return err
	}

	if consumable.QuantityOnHand == nil {
		return nil
	}
	remaining := *consumable.QuantityOnHand - quantity
	if remaining < 0 {
		remaining = 0
	}
	updates := map[string]any{"quantity_on_hand": remaining}
	if remaining == 0 {
		updates["status"] = entities.ConsumableStatusDepleted
	} else if remaining < quantity*3 {
		updates["status"] = entities.ConsumableStatusLowStock
	}
	return tx.Model(&entities.Consumable{}).Where("id = ?", consumableID).Updates(updates).Error
}
