package feeding

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
	"github.com/reeflog/reeflog/internal/database/consumables"
	"github.com/reeflog/reeflog/internal/database/tanks"
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

func floatPtr(v float64) *float64 { return &v }

func TestFeedingSchedules(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	tankRepo := tanks.NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	tank, err := tankRepo.Create(ctx, userID, backend.TankInput{Name: "Feeding tank"})
	require.NoError(t, err)

	t.Run("Create defaults to a daily schedule due in one frequency", func(t *testing.T) {
		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:   tank.ID,
			FoodName: "Reef Frenzy",
			Quantity: floatPtr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, 24, schedule.FrequencyHours)
		assert.True(t, schedule.IsActive)
		require.NotNil(t, schedule.NextDue)
		assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), *schedule.NextDue, time.Minute)
	})

	t.Run("Create rejects empty food name", func(t *testing.T) {
		_, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{TankID: tank.ID})
		var verr *backend.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "food_name", verr.Field)
	})

	t.Run("Create rejects unknown tank", func(t *testing.T) {
		_, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:   "no-such-tank",
			FoodName: "Pellets",
		})
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})

	t.Run("List hides inactive schedules by default", func(t *testing.T) {
		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:   tank.ID,
			FoodName: "Nori",
		})
		require.NoError(t, err)

		inactive := false
		_, err = repo.UpdateSchedule(ctx, userID, schedule.ID, backend.FeedingSchedulePatch{IsActive: &inactive})
		require.NoError(t, err)

		visible, err := repo.ListSchedules(ctx, userID, backend.ListFilter{TankID: tank.ID})
		require.NoError(t, err)
		for _, s := range visible {
			assert.NotEqual(t, schedule.ID, s.ID)
		}

		all, err := repo.ListSchedules(ctx, userID, backend.ListFilter{TankID: tank.ID, IncludeArchived: true})
		require.NoError(t, err)
		found := false
		for _, s := range all {
			if s.ID == schedule.ID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Delete detaches log entries instead of removing them", func(t *testing.T) {
		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:   tank.ID,
			FoodName: "Mysis",
		})
		require.NoError(t, err)
		log, err := repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteSchedule(ctx, userID, schedule.ID))

		_, err = repo.GetSchedule(ctx, userID, schedule.ID)
		assert.ErrorIs(t, err, backend.ErrNotFound)

		var kept entities.FeedingLog
		require.NoError(t, db.Where("id = ?", log.ID).First(&kept).Error)
		assert.Nil(t, kept.ScheduleID)
	})
}

func TestFeedNow(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	tankRepo := tanks.NewRepository(db)
	consumableRepo := consumables.NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	tank, err := tankRepo.Create(ctx, userID, backend.TankInput{Name: "Feed-now tank"})
	require.NoError(t, err)

	t.Run("Feed advances timing and writes a log entry", func(t *testing.T) {
		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:         tank.ID,
			FoodName:       "Frozen brine",
			FrequencyHours: 12,
		})
		require.NoError(t, err)

		log, err := repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)
		assert.Equal(t, "Frozen brine", log.FoodName)
		require.NotNil(t, log.ScheduleID)
		assert.Equal(t, schedule.ID, *log.ScheduleID)

		fed, err := repo.GetSchedule(ctx, userID, schedule.ID)
		require.NoError(t, err)
		require.NotNil(t, fed.LastFed)
		require.NotNil(t, fed.NextDue)
		assert.WithinDuration(t, fed.LastFed.Add(12*time.Hour), *fed.NextDue, time.Second)
	})

	t.Run("Feed deducts linked consumable stock like a dosing event", func(t *testing.T) {
		food, err := consumableRepo.Create(ctx, userID, backend.ConsumableInput{
			TankID:         tank.ID,
			Name:           "LRS Reef Frenzy",
			ConsumableType: "food",
			QuantityOnHand: floatPtr(10),
			QuantityUnit:   "cube",
		})
		require.NoError(t, err)

		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:       tank.ID,
			ConsumableID: &food.ID,
			FoodName:     "Reef Frenzy",
			Quantity:     floatPtr(1),
			QuantityUnit: "cube",
		})
		require.NoError(t, err)

		_, err = repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)

		stocked, err := consumableRepo.Get(ctx, userID, food.ID)
		require.NoError(t, err)
		require.NotNil(t, stocked.QuantityOnHand)
		assert.Equal(t, 9.0, *stocked.QuantityOnHand)
		require.Len(t, stocked.UsageRecords, 1)
		assert.Equal(t, 1.0, stocked.UsageRecords[0].QuantityUsed)
	})

	t.Run("Feed flags low stock under three feedings of headroom", func(t *testing.T) {
		food, err := consumableRepo.Create(ctx, userID, backend.ConsumableInput{
			TankID:         tank.ID,
			Name:           "Last cubes",
			ConsumableType: "food",
			QuantityOnHand: floatPtr(3),
			QuantityUnit:   "cube",
		})
		require.NoError(t, err)

		schedule, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:       tank.ID,
			ConsumableID: &food.ID,
			FoodName:     "Last cubes",
			Quantity:     floatPtr(1),
		})
		require.NoError(t, err)

		_, err = repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)

		stocked, err := consumableRepo.Get(ctx, userID, food.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ConsumableStatusLowStock, stocked.Status)

		// Two more feedings drain the stock entirely.
		_, err = repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)
		_, err = repo.Feed(ctx, userID, schedule.ID)
		require.NoError(t, err)

		depleted, err := consumableRepo.Get(ctx, userID, food.ID)
		require.NoError(t, err)
		require.NotNil(t, depleted.QuantityOnHand)
		assert.Zero(t, *depleted.QuantityOnHand)
		assert.Equal(t, entities.ConsumableStatusDepleted, depleted.Status)
	})
}

func TestFeedingLogsAndOverview(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewRepository(db)
	tankRepo := tanks.NewRepository(db)
	ctx := context.Background()
	userID := database.LocalUserID

	tank, err := tankRepo.Create(ctx, userID, backend.TankInput{Name: "Overview tank"})
	require.NoError(t, err)

	t.Run("CreateLog records an ad-hoc feeding", func(t *testing.T) {
		log, err := repo.CreateLog(ctx, userID, backend.FeedingLogInput{
			TankID:   tank.ID,
			FoodName: "Garlic-soaked pellets",
		})
		require.NoError(t, err)
		assert.Nil(t, log.ScheduleID)
		assert.WithinDuration(t, time.Now().UTC(), log.FedAt, time.Minute)

		_, err = repo.CreateLog(ctx, userID, backend.FeedingLogInput{TankID: tank.ID})
		var verr *backend.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "food_name", verr.Field)
	})

	t.Run("ListLogs returns newest first", func(t *testing.T) {
		older := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 8, 2, 8, 0, 0, 0, time.UTC)
		_, err := repo.CreateLog(ctx, userID, backend.FeedingLogInput{
			TankID:   tank.ID,
			FoodName: "Flake",
			FedAt:    &older,
		})
		require.NoError(t, err)
		_, err = repo.CreateLog(ctx, userID, backend.FeedingLogInput{
			TankID:   tank.ID,
			FoodName: "Nori",
			FedAt:    &newer,
		})
		require.NoError(t, err)

		logs, err := repo.ListLogs(ctx, userID, backend.ListFilter{TankID: tank.ID, From: &older, To: &newer})
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "Nori", logs[0].FoodName)
		assert.Equal(t, "Flake", logs[1].FoodName)
	})

	t.Run("Overview counts overdue schedules and surfaces last feeding", func(t *testing.T) {
		overdue := time.Now().UTC().Add(-2 * time.Hour)
		_, err := repo.CreateSchedule(ctx, userID, backend.FeedingScheduleInput{
			TankID:   tank.ID,
			FoodName: "Morning cube",
			NextDue:  &overdue,
		})
		require.NoError(t, err)

		overview, err := repo.Overview(ctx, userID, tank.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, overview.ActiveSchedules)
		assert.Equal(t, int64(1), overview.OverdueCount)
		require.NotNil(t, overview.NextDue)
		require.NotNil(t, overview.LastFed)
		assert.NotEmpty(t, overview.RecentLogs)
	})

	t.Run("Overview rejects unknown tank", func(t *testing.T) {
		_, err := repo.Overview(ctx, userID, "no-such-tank")
		assert.ErrorIs(t, err, backend.ErrNotFound)
	})
}
