package parameters

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
	"github.com/reeflog/reeflog/internal/database/tanks"
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

func timePtr(v time.Time) *time.Time { return &v }

func TestParameterRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	tankRepo := tanks.NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	tank, err := tankRepo.Create(ctx, userID, backend.TankInput{Name: "Test reef"})
	require.NoError(t, err)

	t.Run("Submit records one reading per value with a shared timestamp", func(t *testing.T) {
		measuredAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		readings, err := repo.Submit(ctx, userID, backend.ParameterSubmission{
			TankID:     tank.ID,
			MeasuredAt: timePtr(measuredAt),
			Values: map[string]float64{
				"calcium":       420,
				"alkalinity_kh": 8.5,
				"ph":            8.2,
			},
		})
		require.NoError(t, err)
		require.Len(t, readings, 3)
		for _, reading := range readings {
			assert.Equal(t, tank.ID, reading.TankID)
			assert.True(t, measuredAt.Equal(reading.MeasuredAt))
		}
	})

	t.Run("Submit rejects an empty test session", func(t *testing.T) {
		_, err := repo.Submit(ctx, userID, backend.ParameterSubmission{TankID: tank.ID})
		var verr *backend.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "values", verr.Field)
	})

	t.Run("Submit rejects an unknown tank", func(t *testing.T) {
		_, err := repo.Submit(ctx, userID, backend.ParameterSubmission{
			TankID: "no-such-tank",
			Values: map[string]float64{"calcium": 420},
		})
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})

	t.Run("History is chronological and filterable by type", func(t *testing.T) {
		older := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 8, 9, 9, 0, 0, 0, time.UTC)
		_, err := repo.Submit(ctx, userID, backend.ParameterSubmission{
			TankID:     tank.ID,
			MeasuredAt: timePtr(newer),
			Values:     map[string]float64{"nitrate": 2.0},
		})
		require.NoError(t, err)
		_, err = repo.Submit(ctx, userID, backend.ParameterSubmission{
			TankID:     tank.ID,
			MeasuredAt: timePtr(older),
			Values:     map[string]float64{"nitrate": 5.0},
		})
		require.NoError(t, err)

		history, err := repo.History(ctx, userID, backend.ParameterFilter{
			TankID:        tank.ID,
			ParameterType: "nitrate",
		})
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 5.0, history[0].Value)
		assert.Equal(t, 2.0, history[1].Value)
	})

	t.Run("Latest returns the newest reading per type", func(t *testing.T) {
		latest, err := repo.Latest(ctx, userID, tank.ID)
		require.NoError(t, err)

		nitrate, ok := latest["nitrate"]
		require.True(t, ok)
		assert.Equal(t, 2.0, nitrate.Value)

		calcium, ok := latest["calcium"]
		require.True(t, ok)
		assert.Equal(t, 420.0, calcium.Value)
	})

	t.Run("DeleteReading removes exactly one measurement", func(t *testing.T) {
		measuredAt := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		_, err := repo.Submit(ctx, userID, backend.ParameterSubmission{
			TankID:     tank.ID,
			MeasuredAt: timePtr(measuredAt),
			Values:     map[string]float64{"phosphate": 0.08},
		})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteReading(ctx, userID, tank.ID, "phosphate", measuredAt))

		history, err := repo.History(ctx, userID, backend.ParameterFilter{
			TankID:        tank.ID,
			ParameterType: "phosphate",
		})
		require.NoError(t, err)
		assert.Empty(t, history)

		err = repo.DeleteReading(ctx, userID, tank.ID, "phosphate", measuredAt)
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})
}
