package lighting

import (
	"context"
	"os"
	"testing"

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

func TestLightingRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	t.Run("Create requires at least one channel", func(t *testing.T) {
		_, err := repo.Create(ctx, userID, backend.LightingInput{
			TankID: "tank-1",
			Name:   "Empty profile",
		})
		var verr *backend.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "channels", verr.Field)
	})

	t.Run("Update merges the intensity grid hour-wise", func(t *testing.T) {
		schedule, err := repo.Create(ctx, userID, backend.LightingInput{
			TankID:   "tank-1",
			Name:     "Day cycle",
			Channels: entities.LightChannels{{Name: "Royal Blue", Color: "#0000ff"}, {Name: "White", Color: "#ffffff"}},
			ScheduleData: entities.IntensityMap{
				"8":  {20, 10},
				"12": {100, 80},
				"20": {10, 0},
			},
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userID, schedule.ID, backend.LightingPatch{
			ScheduleData: entities.IntensityMap{
				"12": {90, 70},
				"16": {60, 40},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{20, 10}, updated.ScheduleData["8"])
		assert.Equal(t, []int{90, 70}, updated.ScheduleData["12"])
		assert.Equal(t, []int{60, 40}, updated.ScheduleData["16"])
		assert.Equal(t, []int{10, 0}, updated.ScheduleData["20"])
	})

	t.Run("channel list replaces wholesale", func(t *testing.T) {
		schedule, err := repo.Create(ctx, userID, backend.LightingInput{
			TankID:   "tank-2",
			Name:     "Blues only",
			Channels: entities.LightChannels{{Name: "Royal Blue", Color: "#0000ff"}},
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, userID, schedule.ID, backend.LightingPatch{
			Channels: entities.LightChannels{
				{Name: "Royal Blue", Color: "#0000ff"},
				{Name: "Violet", Color: "#8000ff"},
				{Name: "White", Color: "#ffffff"},
			},
		})
		require.NoError(t, err)
		assert.Len(t, updated.Channels, 3)
		assert.Equal(t, "Violet", updated.Channels[1].Name)
	})
}

func TestLightingActivation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	newSchedule := func(t *testing.T, tankID, name string, active bool) *entities.LightingSchedule {
		t.Helper()
		schedule, err := repo.Create(ctx, userID, backend.LightingInput{
			TankID:   tankID,
			Name:     name,
			Channels: entities.LightChannels{{Name: "White", Color: "#ffffff"}},
			IsActive: active,
		})
		require.NoError(t, err)
		return schedule
	}

	t.Run("Activate deactivates siblings on the same tank", func(t *testing.T) {
		first := newSchedule(t, "tank-1", "Summer", true)
		second := newSchedule(t, "tank-1", "Winter", false)
		other := newSchedule(t, "tank-2", "Other tank", true)

		activated, err := repo.Activate(ctx, userID, second.ID)
		require.NoError(t, err)
		assert.True(t, activated.IsActive)

		reloaded, err := repo.Get(ctx, userID, first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)

		// Schedules on other tanks are untouched.
		otherReloaded, err := repo.Get(ctx, userID, other.ID)
		require.NoError(t, err)
		assert.True(t, otherReloaded.IsActive)
	})

	t.Run("creating an active schedule deactivates existing ones", func(t *testing.T) {
		first := newSchedule(t, "tank-3", "Original", true)
		newSchedule(t, "tank-3", "Replacement", true)

		reloaded, err := repo.Get(ctx, userID, first.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.IsActive)
	})
}
