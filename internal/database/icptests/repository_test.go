package icptests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/database"
	"github.com/reeflog/reeflog/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db.DB, cleanup
}

func intPtr(v int) *int { return &v }

func TestICPTestRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	t.Run("Create and Get round-trip the element panel", func(t *testing.T) {
		test, err := repo.Create(ctx, userID, backend.ICPTestInput{
			TankID:   "tank-1",
			TestDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			LabName:  "ATI",
			Elements: entities.FloatMap{
				"Ca": 420,
				"Mg": 1350,
				"I":  0.06,
			},
			ElementStatus: entities.StringMap{
				"Ca": "NORMAL",
				"I":  "BELOW_NORMAL",
			},
			ScoreOverall: intPtr(87),
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, userID, test.ID)
		require.NoError(t, err)
		assert.Equal(t, 420.0, got.Elements["Ca"])
		assert.Equal(t, 0.06, got.Elements["I"])
		assert.Equal(t, "BELOW_NORMAL", got.ElementStatus["I"])
		require.NotNil(t, got.ScoreOverall)
		assert.Equal(t, 87, *got.ScoreOverall)
	})

	t.Run("Update merges element panels key-wise", func(t *testing.T) {
		test, err := repo.Create(ctx, userID, backend.ICPTestInput{
			TankID:   "tank-1",
			TestDate: time.Now(),
			LabName:  "Triton",
			Elements: entities.FloatMap{"Ca": 415, "Sr": 8.1},
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userID, test.ID, backend.ICPTestPatch{
			Elements: entities.FloatMap{"Ca": 430, "K": 395},
		})
		require.NoError(t, err)
		assert.Equal(t, 430.0, updated.Elements["Ca"])
		assert.Equal(t, 8.1, updated.Elements["Sr"])
		assert.Equal(t, 395.0, updated.Elements["K"])
	})

	t.Run("recommendations replace wholesale", func(t *testing.T) {
		test, err := repo.Create(ctx, userID, backend.ICPTestInput{
			TankID:   "tank-1",
			TestDate: time.Now(),
			LabName:  "Fauna Marin",
			Recommendations: entities.Recommendations{
				{Element: "I", Action: "raise", Dosage: "2 ml/day"},
				{Element: "Zn", Action: "watch"},
			},
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userID, test.ID, backend.ICPTestPatch{
			Recommendations: entities.Recommendations{
				{Element: "I", Action: "watch"},
			},
		})
		require.NoError(t, err)
		require.Len(t, updated.Recommendations, 1)
		assert.Equal(t, "watch", updated.Recommendations[0].Action)
	})

	t.Run("explicit null clears a score", func(t *testing.T) {
		test, err := repo.Create(ctx, userID, backend.ICPTestInput{
			TankID:       "tank-1",
			TestDate:     time.Now(),
			LabName:      "ATI",
			ScoreOverall: intPtr(91),
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userID, test.ID, backend.ICPTestPatch{
			ScoreOverall: backend.SetNull[int](),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ScoreOverall)
	})

	t.Run("List filters by lab name", func(t *testing.T) {
		tests, err := repo.List(ctx, userID, backend.ListFilter{Lab: "Triton"})
		require.NoError(t, err)
		require.Len(t, tests, 1)
		assert.Equal(t, "Triton", tests[0].LabName)
	})
}
