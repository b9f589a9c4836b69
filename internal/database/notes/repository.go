// Package notes provides the local backend for tank notes.
package notes

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

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var notes []entities.Note
	err := q.Order("created_at DESC").Find(&notes).Error
	return notes, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Note, error) {
	var note entities.Note
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Repository) Create(ctx context.Context, userID string, in backend.NoteInput) (*entities.Note, error) {
	if in.Content == "" {
		return nil, &backend.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	note := &entities.Note{
		ID:      uuid.NewString(),
		TankID:  in.TankID,
		UserID:  userID,
		Content: in.Content,
	}
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.NotePatch) (*entities.Note, error) {
	note, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Content != nil {
		updates["content"] = *p.Content
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(note).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}
