package photos

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/database"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dir := t.TempDir()
	db, err := database.NewDatabase(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewRepository(db.DB, filepath.Join(dir, "photos"))
	require.NoError(t, err)
	return repo
}

func TestPhotoRepository(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	userID := database.LocalUserID

	content := []byte("not really a jpeg")

	t.Run("Upload stores bytes on disk and Download reads them back", func(t *testing.T) {
		photo, err := repo.Upload(ctx, userID, backend.PhotoInput{
			TankID:      "tank-1",
			Filename:    "fts.jpg",
			Caption:     "Full tank shot",
			ContentType: "image/jpeg",
		}, bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), photo.SizeBytes)
		assert.NotEmpty(t, photo.FilePath)

		blob, err := repo.Download(ctx, userID, photo.ID)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", blob.ContentType)
		assert.Equal(t, content, blob.Bytes())

		blob.Release()
		assert.Nil(t, blob.Bytes())
	})

	t.Run("Upload requires a filename", func(t *testing.T) {
		_, err := repo.Upload(ctx, userID, backend.PhotoInput{TankID: "tank-1"}, bytes.NewReader(content))
		var verr *backend.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "filename", verr.Field)
	})

	t.Run("Delete removes the file with the row", func(t *testing.T) {
		photo, err := repo.Upload(ctx, userID, backend.PhotoInput{
			TankID:   "tank-1",
			Filename: "coral.png",
		}, bytes.NewReader(content))
		require.NoError(t, err)

		path := photo.FilePath
		_, err = os.Stat(path)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, userID, photo.ID))

		_, err = repo.Get(ctx, userID, photo.ID)
		assert.ErrorIs(t, err, backend.ErrNotFound)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("caption edits keep the stored file", func(t *testing.T) {
		photo, err := repo.Upload(ctx, userID, backend.PhotoInput{
			TankID:   "tank-1",
			Filename: "frag.jpg",
		}, bytes.NewReader(content))
		require.NoError(t, err)

		caption := "New frag rack"
		updated, err := repo.Update(ctx, userID, photo.ID, backend.PhotoPatch{Caption: &caption})
		require.NoError(t, err)
		assert.Equal(t, "New frag rack", updated.Caption)

		blob, err := repo.Download(ctx, userID, photo.ID)
		require.NoError(t, err)
		assert.Equal(t, content, blob.Bytes())
	})
}
