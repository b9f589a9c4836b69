// Package equipment provides the local backend for equipment records,
// including conversion into consumables for items filed under the
// wrong type (filter media, test kits).
package equipment

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

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Equipment, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Type != "" {
		q = q.Where("equipment_type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("condition = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("purchase_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("purchase_date <= ?", *f.To)
	}

	var records []entities.Equipment
	err := q.Order("name ASC").Find(&records).Error
	return records, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Equipment, error) {
	var record entities.Equipment
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.EquipmentInput) (*entities.Equipment, error) {
	if in.Name == "" {
		return nil, &backend.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.EquipmentType == "" {
		return nil, &backend.ValidationError{Field: "equipment_type", Reason: "must not be empty"}
	}

	record := &entities.Equipment{
		ID:            uuid.NewString(),
		TankID:        in.TankID,
		UserID:        userID,
		Name:          in.Name,
		EquipmentType: in.EquipmentType,
		Manufacturer:  in.Manufacturer,
		Model:         in.Model,
		Specs:         in.Specs,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Condition:     in.Condition,
		Notes:         in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.EquipmentPatch) (*entities.Equipment, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.EquipmentType != nil {
		updates["equipment_type"] = *p.EquipmentType
	}
	if p.Manufacturer != nil {
		updates["manufacturer"] = *p.Manufacturer
	}
	if p.Model != nil {
		updates["model"] = *p.Model
	}
	if p.Specs != nil {
		// Merge, never overwrite: stored keys absent from the patch
		// survive.
		merged := entities.StringMap{}
		for k, v := range record.Specs {
			merged[k] = v
		}
		for k, v := range p.Specs {
			merged[k] = v
		}
		updates["specs"] = merged
	}
	p.PurchaseDate.Apply(updates, "purchase_date")
	if p.PurchasePrice != nil {
		updates["purchase_price"] = *p.PurchasePrice
	}
	if p.Condition != nil {
		updates["condition"] = *p.Condition
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
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Equipment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// ConvertToConsumable copies the shared fields into a new consumable
// row, then deletes the equipment row. Both steps run in one
// transaction: the equipment is never deleted without a confirmed
// insert.
func (r *Repository) ConvertToConsumable(ctx context.Context, userID, id string, in backend.ConvertToConsumableInput) (*entities.Consumable, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.ConsumableType == "" {
		return nil, &backend.ValidationError{Field: "consumable_type", Reason: "must not be empty"}
	}

	consumable := &entities.Consumable{
		ID:             uuid.NewString(),
		TankID:         record.TankID,
		UserID:         userID,
		Name:           record.Name,
		ConsumableType: in.ConsumableType,
		Brand:          record.Manufacturer,
		ProductName:    record.Model,
		QuantityOnHand: in.QuantityOnHand,
		QuantityUnit:   in.QuantityUnit,
		PurchaseDate:   record.PurchaseDate,
		PurchasePrice:  record.PurchasePrice,
		Status:         entities.ConsumableStatusActive,
		Notes:          record.Notes,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(consumable).Error; err != nil {
			return err
		}
		return tx.Delete(record).Error
	})
	if err != nil {
		return nil, err
	}
	return consumable, nil
}
