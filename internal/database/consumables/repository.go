// Package consumables provides the local backend for consumable stock
// and its dosing history.
package consumables

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

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Consumable, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Type != "" {
		q = q.Where("consumable_type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("purchase_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("purchase_date <= ?", *f.To)
	}

	var records []entities.Consumable
	err := q.Order("name ASC").Find(&records).Error
	return records, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Consumable, error) {
	var record entities.Consumable
	err := r.db.WithContext(ctx).
		Preload("UsageRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("usage_date DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.ConsumableInput) (*entities.Consumable, error) {
	if in.Name == "" {
		return nil, &backend.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.ConsumableType == "" {
		return nil, &backend.ValidationError{Field: "consumable_type", Reason: "must not be empty"}
	}

	status := in.Status
	if status == "" {
		status = entities.ConsumableStatusActive
	}

	record := &entities.Consumable{
		ID:             uuid.NewString(),
		TankID:         in.TankID,
		UserID:         userID,
		Name:           in.Name,
		ConsumableType: in.ConsumableType,
		Brand:          in.Brand,
		ProductName:    in.ProductName,
		QuantityOnHand: in.QuantityOnHand,
		QuantityUnit:   in.QuantityUnit,
		PurchaseDate:   in.PurchaseDate,
		PurchasePrice:  in.PurchasePrice,
		PurchaseURL:    in.PurchaseURL,
		ExpirationDate: in.ExpirationDate,
		Status:         status,
		Notes:          in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.ConsumablePatch) (*entities.Consumable, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.ConsumableType != nil {
		updates["consumable_type"] = *p.ConsumableType
	}
	if p.Brand != nil {
		updates["brand"] = *p.Brand
	}
	if p.ProductName != nil {
		updates["product_name"] = *p.ProductName
	}
	p.QuantityOnHand.Apply(updates, "quantity_on_hand")
	if p.QuantityUnit != nil {
		updates["quantity_unit"] = *p.QuantityUnit
	}
	p.PurchaseDate.Apply(updates, "purchase_date")
	if p.PurchasePrice != nil {
		updates["purchase_price"] = *p.PurchasePrice
	}
	if p.PurchaseURL != nil {
		updates["purchase_url"] = *p.PurchaseURL
	}
	p.ExpirationDate.Apply(updates, "expiration_date")
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Consumable{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return backend.ErrNotFound
		}
		return tx.Where("consumable_id = ?", id).Delete(&entities.ConsumableUsage{}).Error
	})
}

// LogUsage records a dosing event and decrements the stock level. The
// stock floors at zero; reaching it flips the status to depleted.
func (r *Repository) LogUsage(ctx context.Context, userID, id string, in backend.UsageInput) (*entities.Consumable, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.QuantityUsed <= 0 {
		return nil, &backend.ValidationError{Field: "quantity_used", Reason: "must be positive"}
	}

	unit := in.QuantityUnit
	if unit == "" {
		unit = record.QuantityUnit
	}
	usage := &entities.ConsumableUsage{
		ID:           uuid.NewString(),
		ConsumableID: id,
		UserID:       userID,
		UsageDate:    in.UsageDate,
		QuantityUsed: in.QuantityUsed,
		QuantityUnit: unit,
		Notes:        in.Notes,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(usage).Error; err != nil {
			return err
		}
		if record.QuantityOnHand == nil {
			return nil
		}
		remaining := *record.QuantityOnHand - in.QuantityUsed
		if remaining < 0 {
			remaining = 0
		}
		updates := map[string]any{"quantity_on_hand": remaining}
		if remaining == 0 {
			updates["status"] = entities.ConsumableStatusDepleted
		}
		return tx.Model(&entities.Consumable{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}
