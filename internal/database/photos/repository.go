// Package photos provides the local backend for tank photos. Bytes
// live on disk next to the database; the table stores metadata and the
// file path.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type Repository struct {
	db  *gorm.DB
	dir string
}

// NewRepository creates a photos repository storing files under dir.
func NewRepository(db *gorm.DB, dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photos directory: %w", err)
	}
	return &Repository{db: db, dir: dir}, nil
}

func (r *Repository) List(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Photo, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.From != nil {
		q = q.Where("taken_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("taken_date <= ?", *f.To)
	}

	var photos []entities.Photo
	err := q.Order("created_at DESC").Find(&photos).Error
	return photos, err
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*entities.Photo, error) {
	var photo entities.Photo
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *Repository) Update(ctx context.Context, userID, id string, p backend.PhotoPatch) (*entities.Photo, error) {
	photo, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if p.Caption != nil {
		updates["caption"] = *p.Caption
	}
	p.TakenDate.Apply(updates, "taken_date")

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(photo).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, userID, id)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	photo, err := r.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(photo).Error; err != nil {
		return err
	}
	if photo.FilePath != "" {
		// Best effort: a missing file is not worth failing the delete.
		_ = os.Remove(photo.FilePath)
	}
	return nil
}

// Upload writes the content to disk and records the metadata row.
func (r *Repository) Upload(ctx context.Context, userID string, in backend.PhotoInput, content io.Reader) (*entities.Photo, error) {
	if in.Filename == "" {
		return nil, &backend.ValidationError{Field: "filename", Reason: "must not be empty"}
	}

	id := uuid.NewString()
	path := filepath.Join(r.dir, id+filepath.Ext(in.Filename))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create photo file: %w", err)
	}
	size, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write photo file: %w", err)
	}

	photo := &entities.Photo{
		ID:          id,
		TankID:      in.TankID,
		UserID:      userID,
		Filename:    in.Filename,
		Caption:     in.Caption,
		ContentType: in.ContentType,
		SizeBytes:   size,
		FilePath:    path,
		TakenDate:   in.TakenDate,
	}
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		os.Remove(path)
		return nil, err
	}
	return photo, nil
}

// Download reads the stored file back as a releasable blob handle.
func (r *Repository) Download(ctx context.Context, userID, id string) (*backend.Blob, error) {
	photo, err := r.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if photo.FilePath == "" {
		return nil, backend.ErrNotFound
	}
	data, err := os.ReadFile(photo.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, backend.ErrNotFound
		}
		return nil, err
	}
	return backend.NewBlob(photo.ContentType, data), nil
}
