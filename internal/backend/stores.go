package backend

import (
	"context"
	"io"
	"time"

	"github.com/reeflog/reeflog/internal/entities"
)

// Every store below exists in a local (embedded SQLite) and a remote
// (HTTP API) implementation with identical semantics. Screens only ever
// see these interfaces, resolved once at startup by the binding layer.
//
// userID is the owning principal: the persisted session's user in
// remote mode, the constant local principal in local mode.

type TankStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Tank, error)
	Get(ctx context.Context, userID, id string) (*entities.Tank, error)
	Create(ctx context.Context, userID string, in TankInput) (*entities.Tank, error)
	Update(ctx context.Context, userID, id string, p TankPatch) (*entities.Tank, error)
	Delete(ctx context.Context, userID, id string) error
	SetArchived(ctx context.Context, userID, id string, archived bool) (*entities.Tank, error)
	SetSharing(ctx context.Context, userID, id string, enabled bool) (*entities.Tank, error)

	AddEvent(ctx context.Context, userID, tankID string, in TankEventInput) (*entities.TankEvent, error)
	DeleteEvent(ctx context.Context, userID, tankID, eventID string) error
}

type NoteStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Note, error)
	Get(ctx context.Context, userID, id string) (*entities.Note, error)
	Create(ctx context.Context, userID string, in NoteInput) (*entities.Note, error)
	Update(ctx context.Context, userID, id string, p NotePatch) (*entities.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

type LivestockStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Livestock, error)
	Get(ctx context.Context, userID, id string) (*entities.Livestock, error)
	Create(ctx context.Context, userID string, in LivestockInput) (*entities.Livestock, error)
	Update(ctx context.Context, userID, id string, p LivestockPatch) (*entities.Livestock, error)
	Delete(ctx context.Context, userID, id string) error
	SetArchived(ctx context.Context, userID, id string, archived bool) (*entities.Livestock, error)

	// Split moves n units off a record into a new sibling record with
	// its own status and date. 0 < n <= current quantity, otherwise a
	// ValidationError and no state change.
	Split(ctx context.Context, userID, id string, in SplitInput) (*SplitResult, error)
}

type EquipmentStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Equipment, error)
	Get(ctx context.Context, userID, id string) (*entities.Equipment, error)
	Create(ctx context.Context, userID string, in EquipmentInput) (*entities.Equipment, error)
	Update(ctx context.Context, userID, id string, p EquipmentPatch) (*entities.Equipment, error)
	Delete(ctx context.Context, userID, id string) error

	// ConvertToConsumable copies the shared fields into a new
	// consumable and removes the equipment row. The two steps are one
	// logical operation: no deletion without a confirmed insert.
	ConvertToConsumable(ctx context.Context, userID, id string, in ConvertToConsumableInput) (*entities.Consumable, error)
}

type ConsumableStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Consumable, error)
	Get(ctx context.Context, userID, id string) (*entities.Consumable, error)
	Create(ctx context.Context, userID string, in ConsumableInput) (*entities.Consumable, error)
	Update(ctx context.Context, userID, id string, p ConsumablePatch) (*entities.Consumable, error)
	Delete(ctx context.Context, userID, id string) error

	// LogUsage records a dosing event and decrements the stock level,
	// flooring at zero and flipping the status to depleted there.
	LogUsage(ctx context.Context, userID, id string, in UsageInput) (*entities.Consumable, error)
}

type ICPTestStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.ICPTest, error)
	Get(ctx context.Context, userID, id string) (*entities.ICPTest, error)
	Create(ctx context.Context, userID string, in ICPTestInput) (*entities.ICPTest, error)
	Update(ctx context.Context, userID, id string, p ICPTestPatch) (*entities.ICPTest, error)
	Delete(ctx context.Context, userID, id string) error
}

type LightingStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.LightingSchedule, error)
	Get(ctx context.Context, userID, id string) (*entities.LightingSchedule, error)
	Create(ctx context.Context, userID string, in LightingInput) (*entities.LightingSchedule, error)
	Update(ctx context.Context, userID, id string, p LightingPatch) (*entities.LightingSchedule, error)
	Delete(ctx context.Context, userID, id string) error

	// Activate marks the schedule active and deactivates its siblings
	// on the same tank.
	Activate(ctx context.Context, userID, id string) (*entities.LightingSchedule, error)
}

type MaintenanceStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.MaintenanceReminder, error)
	Get(ctx context.Context, userID, id string) (*entities.MaintenanceReminder, error)
	Create(ctx context.Context, userID string, in MaintenanceInput) (*entities.MaintenanceReminder, error)
	Update(ctx context.Context, userID, id string, p MaintenancePatch) (*entities.MaintenanceReminder, error)
	Delete(ctx context.Context, userID, id string) error

	// Complete stamps the chore done and advances the next due date by
	// the reminder's frequency.
	Complete(ctx context.Context, userID, id string, doneAt time.Time) (*entities.MaintenanceReminder, error)
}

// ParameterFilter narrows parameter history queries.
type ParameterFilter struct {
	TankID        string
	ParameterType string
	From          *time.Time
	To            *time.Time
}

type ParameterStore interface {
	// Submit records one test session: every value in the submission
	// becomes a reading sharing the session timestamp. At least one
	// value is required.
	Submit(ctx context.Context, userID string, in ParameterSubmission) ([]entities.ParameterReading, error)
	History(ctx context.Context, userID string, f ParameterFilter) ([]entities.ParameterReading, error)

	// Latest returns the newest reading per parameter type for a tank.
	Latest(ctx context.Context, userID, tankID string) (map[string]entities.ParameterReading, error)
	DeleteReading(ctx context.Context, userID, tankID, parameterType string, measuredAt time.Time) error
}

// FeedingOverview summarizes a tank's feeding state.
type FeedingOverview struct {
	TankID          string                `json:"tank_id"`
	ActiveSchedules int                   `json:"active_schedules"`
	LastFed         *time.Time            `json:"last_fed,omitempty"`
	NextDue         *time.Time            `json:"next_due,omitempty"`
	OverdueCount    int64                 `json:"overdue_count"`
	RecentLogs      []entities.FeedingLog `json:"recent_logs"`
}

type FeedingStore interface {
	ListSchedules(ctx context.Context, userID string, f ListFilter) ([]entities.FeedingSchedule, error)
	GetSchedule(ctx context.Context, userID, id string) (*entities.FeedingSchedule, error)
	CreateSchedule(ctx context.Context, userID string, in FeedingScheduleInput) (*entities.FeedingSchedule, error)
	UpdateSchedule(ctx context.Context, userID, id string, p FeedingSchedulePatch) (*entities.FeedingSchedule, error)
	DeleteSchedule(ctx context.Context, userID, id string) error

	// Feed stamps the schedule fed now, advances next_due by the
	// frequency, writes a feeding log, and deducts linked consumable
	// stock the same way a dosing event would.
	Feed(ctx context.Context, userID, id string) (*entities.FeedingLog, error)

	ListLogs(ctx context.Context, userID string, f ListFilter) ([]entities.FeedingLog, error)
	CreateLog(ctx context.Context, userID string, in FeedingLogInput) (*entities.FeedingLog, error)

	Overview(ctx context.Context, userID, tankID string) (*FeedingOverview, error)
}

type FinanceStore interface {
	ListExpenses(ctx context.Context, userID string, f ListFilter) ([]entities.Expense, error)
	GetExpense(ctx context.Context, userID, id string) (*entities.Expense, error)
	CreateExpense(ctx context.Context, userID string, in ExpenseInput) (*entities.Expense, error)
	UpdateExpense(ctx context.Context, userID, id string, p ExpensePatch) (*entities.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error

	ListBudgets(ctx context.Context, userID string, f ListFilter) ([]entities.Budget, error)
	CreateBudget(ctx context.Context, userID string, in BudgetInput) (*entities.Budget, error)
	UpdateBudget(ctx context.Context, userID, id string, p BudgetPatch) (*entities.Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error
}

type PhotoStore interface {
	List(ctx context.Context, userID string, f ListFilter) ([]entities.Photo, error)
	Get(ctx context.Context, userID, id string) (*entities.Photo, error)
	Update(ctx context.Context, userID, id string, p PhotoPatch) (*entities.Photo, error)
	Delete(ctx context.Context, userID, id string) error

	// Upload stores the photo bytes (on disk locally, multipart
	// remotely). Uploads are never deferred to the offline queue.
	Upload(ctx context.Context, userID string, in PhotoInput, content io.Reader) (*entities.Photo, error)

	// Download returns the photo bytes as a releasable handle.
	Download(ctx context.Context, userID, id string) (*Blob, error)
}

// ShareStore reads public shared tank profiles. It is unauthenticated
// and always served by the remote adapter, even in local mode: shared
// content lives on the service, never on-device.
type ShareStore interface {
	GetPublicProfile(ctx context.Context, token string) (*entities.PublicTankProfile, error)
	DownloadPublicPhoto(ctx context.Context, token, photoID string) (*Blob, error)
}

// AdminStats summarizes the whole installation. Remote-only.
type AdminStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalTanks     int64 `json:"total_tanks"`
	TotalLivestock int64 `json:"total_livestock"`
	TotalPhotos    int64 `json:"total_photos"`
	StorageBytes   int64 `json:"storage_bytes"`
}

type AdminStore interface {
	// SystemStats aggregates across all users; in local mode this is
	// ErrNotAvailableLocally.
	SystemStats(ctx context.Context) (*AdminStats, error)
}
