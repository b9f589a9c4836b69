// Package livestock provides the local backend for fish, corals and
// invertebrates, including the quantity split operation.
package livestock

import (
	"context"
	"errors"
	"fmt"

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

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Livestock, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !f.IncludeArchived {
		q = q.Where("is_archived = ?", false)
	}
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("added_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("added_date <= ?", *f.To)
	}

	var records []entities.Livestock
	err := q.Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Livestock, error) {
	var record entities.Livestock
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.LivestockInput) (*entities.Livestock, error) {
	if in.SpeciesName == "" {
		return nil, &backend.ValidationError{Field: "species_name", Reason: "must not be empty"}
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	status := in.Status
	if status == "" {
		status = entities.LivestockStatusAlive
	}

	record := &entities.Livestock{
		ID:          uuid.NewString(),
		TankID:      in.TankID,
		UserID:      userID,
		SpeciesName: in.SpeciesName,
		CommonName:  in.CommonName,
		Type:        in.Type,
		SpeciesRef:  in.SpeciesRef,
		Quantity:    quantity,
		Status:      status,
		StatusDate:  in.StatusDate,
		AddedDate:   in.AddedDate,
		Notes:       in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.LivestockPatch) (*entities.Livestock, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.SpeciesName != nil {
		updates["species_name"] = *p.SpeciesName
	}
	if p.CommonName != nil {
		updates["common_name"] = *p.CommonName
	}
	if p.Type != nil {
		updates["type"] = *p.Type
	}
	if p.SpeciesRef != nil {
		updates["species_ref"] = *p.SpeciesRef
	}
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			return nil, &backend.ValidationError{Field: "quantity", Reason: "must not be negative"}
		}
		updates["quantity"] = *p.Quantity
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	p.StatusDate.Apply(updates, "status_date")
	p.AddedDate.Apply(updates, "added_date")
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
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Livestock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func (r *Repository) SetArchived(ctx context.Context, userID, id string, archived bool) (*entities.Livestock, error) {
	record, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(record).Update("is_archived", archived).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, userID, id)
}

// Split moves in.Quantity units off the source record into a new
// sibling record carrying the given status and date. The bound
// 0 < n <= quantity is enforced before any write; violating it is an
// error, not a clamp.
func (r *Repository) Split(ctx context.Context, userID, id string, in backend.SplitInput) (*backend.SplitResult, error) {
	source, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, &backend.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if in.Quantity > source.Quantity {
		return nil, &backend.ValidationError{
			Field:  "quantity",
			Reason: fmt.Sprintf("cannot split %d of %d", in.Quantity, source.Quantity),
		}
	}

	split := &entities.Livestock{
		ID:          uuid.NewString(),
		TankID:      source.TankID,
		UserID:      userID,
		SpeciesName: source.SpeciesName,
		CommonName:  source.CommonName,
		Type:        source.Type,
		SpeciesRef:  source.SpeciesRef,
		Quantity:    in.Quantity,
		Status:      in.Status,
		StatusDate:  &in.StatusDate,
		AddedDate:   source.AddedDate,
		Notes:       source.Notes,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(source).Update("quantity", source.Quantity-in.Quantity).Error; err != nil {
			return err
		}
		return tx.Create(split).Error
	})
	if err != nil {
		return nil, err
	}

	updated, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &backend.SplitResult{Source: updated, Split: split}, nil
}
