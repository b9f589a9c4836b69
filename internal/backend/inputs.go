package backend

import (
	"time"

	"github.com/reeflog/reeflog/internal/entities"
)

// Create inputs carry the caller-settable fields of an entity; the
// adapter assigns id and timestamps. Patch structs express partial
// updates: nil pointer fields are left untouched, Opt fields can also
// write an explicit null, and open-map fields merge key-wise.

type TankInput struct {
	Name                string             `json:"name"`
	DisplayVolumeLiters *float64           `json:"display_volume_liters,omitempty"`
	SumpVolumeLiters    *float64           `json:"sump_volume_liters,omitempty"`
	WaterType           entities.WaterType `json:"water_type,omitempty"`
	AquariumSubtype     string             `json:"aquarium_subtype,omitempty"`
	Description         string             `json:"description,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	SetupDate           *time.Time         `json:"setup_date,omitempty"`

	ElectricityCostPerDay *float64 `json:"electricity_cost_per_day,omitempty"`

	HasRefugium           bool     `json:"has_refugium,omitempty"`
	RefugiumVolumeLiters  *float64 `json:"refugium_volume_liters,omitempty"`
	RefugiumType          string   `json:"refugium_type,omitempty"`
	RefugiumAlgae         string   `json:"refugium_algae,omitempty"`
	RefugiumLightingHours *float64 `json:"refugium_lighting_hours,omitempty"`
	RefugiumNotes         string   `json:"refugium_notes,omitempty"`
}

type TankPatch struct {
	Name                *string
	DisplayVolumeLiters Opt[float64]
	SumpVolumeLiters    Opt[float64]
	WaterType           *entities.WaterType
	AquariumSubtype     *string
	Description         *string
	ImageURL            *string
	SetupDate           Opt[time.Time]

	ElectricityCostPerDay Opt[float64]

	HasRefugium           *bool
	RefugiumVolumeLiters  Opt[float64]
	RefugiumType          *string
	RefugiumAlgae         *string
	RefugiumLightingHours Opt[float64]
	RefugiumNotes         *string
}

type TankEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	EventDate   time.Time `json:"event_date"`
	EventType   string    `json:"event_type,omitempty"`
}

type NoteInput struct {
	TankID  string `json:"tank_id"`
	Content string `json:"content"`
}

type NotePatch struct {
	Content *string
}

type LivestockInput struct {
	TankID      string                   `json:"tank_id"`
	SpeciesName string                   `json:"species_name"`
	CommonName  string                   `json:"common_name,omitempty"`
	Type        entities.LivestockType   `json:"type"`
	SpeciesRef  string                   `json:"species_ref,omitempty"`
	Quantity    int                      `json:"quantity,omitempty"`
	Status      entities.LivestockStatus `json:"status,omitempty"`
	StatusDate  *time.Time               `json:"status_date,omitempty"`
	AddedDate   *time.Time               `json:"added_date,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
}

type LivestockPatch struct {
	SpeciesName *string
	CommonName  *string
	Type        *entities.LivestockType
	SpeciesRef  *string
	Quantity    *int
	Status      *entities.LivestockStatus
	StatusDate  Opt[time.Time]
	AddedDate   Opt[time.Time]
	Notes       *string
}

// SplitInput moves Quantity units off an existing livestock record into
// a new sibling record carrying the given status and date.
type SplitInput struct {
	Quantity   int                      `json:"quantity"`
	Status     entities.LivestockStatus `json:"status"`
	StatusDate time.Time                `json:"status_date"`
}

// SplitResult returns both sides of a split.
type SplitResult struct {
	Source *entities.Livestock `json:"source"`
	Split  *entities.Livestock `json:"split"`
}

type EquipmentInput struct {
	TankID        string                      `json:"tank_id"`
	Name          string                      `json:"name"`
	EquipmentType string                      `json:"equipment_type"`
	Manufacturer  string                      `json:"manufacturer,omitempty"`
	Model         string                      `json:"model,omitempty"`
	Specs         entities.StringMap          `json:"specs,omitempty"`
	PurchaseDate  *time.Time                  `json:"purchase_date,omitempty"`
	PurchasePrice string                      `json:"purchase_price,omitempty"`
	Condition     entities.EquipmentCondition `json:"condition,omitempty"`
	Notes         string                      `json:"notes,omitempty"`
}

type EquipmentPatch struct {
	Name          *string
	EquipmentType *string
	Manufacturer  *string
	Model         *string
	// Specs merges into the stored map: provided keys are added or
	// replaced, stored keys absent here survive. Nil leaves the map
	// untouched.
	Specs         entities.StringMap
	PurchaseDate  Opt[time.Time]
	PurchasePrice *string
	Condition     *entities.EquipmentCondition
	Notes         *string
}

// ConvertToConsumableInput turns a piece of equipment (typically filter
// media or a test kit mis-filed as equipment) into a consumable.
type ConvertToConsumableInput struct {
	ConsumableType string   `json:"consumable_type"`
	QuantityOnHand *float64 `json:"quantity_on_hand,omitempty"`
	QuantityUnit   string   `json:"quantity_unit,omitempty"`
}

type ConsumableInput struct {
	TankID         string                    `json:"tank_id"`
	Name           string                    `json:"name"`
	ConsumableType string                    `json:"consumable_type"`
	Brand          string                    `json:"brand,omitempty"`
	ProductName    string                    `json:"product_name,omitempty"`
	QuantityOnHand *float64                  `json:"quantity_on_hand,omitempty"`
	QuantityUnit   string                    `json:"quantity_unit,omitempty"`
	PurchaseDate   *time.Time                `json:"purchase_date,omitempty"`
	PurchasePrice  string                    `json:"purchase_price,omitempty"`
	PurchaseURL    string                    `json:"purchase_url,omitempty"`
	ExpirationDate *time.Time                `json:"expiration_date,omitempty"`
	Status         entities.ConsumableStatus `json:"status,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
}

type ConsumablePatch struct {
	Name           *string
	ConsumableType *string
	Brand          *string
	ProductName    *string
	QuantityOnHand Opt[float64]
	QuantityUnit   *string
	PurchaseDate   Opt[time.Time]
	PurchasePrice  *string
	PurchaseURL    *string
	ExpirationDate Opt[time.Time]
	Status         *entities.ConsumableStatus
	Notes          *string
}

type UsageInput struct {
	UsageDate    time.Time `json:"usage_date"`
	QuantityUsed float64   `json:"quantity_used"`
	QuantityUnit string    `json:"quantity_unit,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

type ICPTestInput struct {
	TankID    string             `json:"tank_id"`
	TestDate  time.Time          `json:"test_date"`
	LabName   string             `json:"lab_name"`
	LabTestID string             `json:"lab_test_id,omitempty"`
	WaterType entities.WaterType `json:"water_type,omitempty"`

	SampleDate    *time.Time `json:"sample_date,omitempty"`
	ReceivedDate  *time.Time `json:"received_date,omitempty"`
	EvaluatedDate *time.Time `json:"evaluated_date,omitempty"`

	ScoreMajorElements *int `json:"score_major_elements,omitempty"`
	ScoreMinorElements *int `json:"score_minor_elements,omitempty"`
	ScorePollutants    *int `json:"score_pollutants,omitempty"`
	ScoreBaseElements  *int `json:"score_base_elements,omitempty"`
	ScoreOverall       *int `json:"score_overall,omitempty"`

	Elements      entities.FloatMap  `json:"elements,omitempty"`
	ElementStatus entities.StringMap `json:"element_status,omitempty"`

	Recommendations entities.Recommendations `json:"recommendations,omitempty"`

	PDFFilename string `json:"pdf_filename,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type ICPTestPatch struct {
	TestDate  *time.Time
	LabName   *string
	LabTestID *string
	WaterType *entities.WaterType

	SampleDate    Opt[time.Time]
	ReceivedDate  Opt[time.Time]
	EvaluatedDate Opt[time.Time]

	ScoreMajorElements Opt[int]
	ScoreMinorElements Opt[int]
	ScorePollutants    Opt[int]
	ScoreBaseElements  Opt[int]
	ScoreOverall       Opt[int]

	// Elements and ElementStatus merge into the stored panels; nil
	// leaves them untouched.
	Elements      entities.FloatMap
	ElementStatus entities.StringMap

	// Recommendations replace wholesale when non-nil; labs re-issue the
	// full list with every evaluation.
	Recommendations entities.Recommendations

	PDFFilename *string
	Notes       *string
}

type LightingInput struct {
	TankID       string                 `json:"tank_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Channels     entities.LightChannels `json:"channels"`
	ScheduleData entities.IntensityMap  `json:"schedule_data"`
	IsActive     bool                   `json:"is_active,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
}

type LightingPatch struct {
	Name        *string
	Description *string
	// Channels replace wholesale when non-nil (reordering channels
	// invalidates stored intensity positions, so partial channel edits
	// are not meaningful).
	Channels entities.LightChannels
	// ScheduleData merges hour-wise: provided hours are replaced,
	// absent hours survive.
	ScheduleData entities.IntensityMap
	IsActive     *bool
	Notes        *string
}

type MaintenanceInput struct {
	TankID        string     `json:"tank_id"`
	EquipmentID   *string    `json:"equipment_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	FrequencyDays int        `json:"frequency_days"`
	NextDueDate   *time.Time `json:"next_due_date,omitempty"`
}

type MaintenancePatch struct {
	EquipmentID   Opt[string]
	Title         *string
	Description   *string
	FrequencyDays *int
	NextDueDate   Opt[time.Time]
	IsActive      *bool
}

// ParameterSubmission is one water test session: only the parameters
// actually measured are present in Values, keyed by parameter type.
type ParameterSubmission struct {
	TankID     string             `json:"tank_id"`
	MeasuredAt *time.Time         `json:"measured_at,omitempty"`
	Values     map[string]float64 `json:"values"`
}

type FeedingScheduleInput struct {
	TankID         string     `json:"tank_id"`
	ConsumableID   *string    `json:"consumable_id,omitempty"`
	FoodName       string     `json:"food_name"`
	Quantity       *float64   `json:"quantity,omitempty"`
	QuantityUnit   string     `json:"quantity_unit,omitempty"`
	FrequencyHours int        `json:"frequency_hours,omitempty"`
	NextDue        *time.Time `json:"next_due,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type FeedingSchedulePatch struct {
	ConsumableID   Opt[string]
	FoodName       *string
	Quantity       Opt[float64]
	QuantityUnit   *string
	FrequencyHours *int
	NextDue        Opt[time.Time]
	IsActive       *bool
	Notes          *string
}

type FeedingLogInput struct {
	TankID       string     `json:"tank_id"`
	ScheduleID   *string    `json:"schedule_id,omitempty"`
	FoodName     string     `json:"food_name"`
	Quantity     *float64   `json:"quantity,omitempty"`
	QuantityUnit string     `json:"quantity_unit,omitempty"`
	FedAt        *time.Time `json:"fed_at,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

type ExpenseInput struct {
	TankID      *string                  `json:"tank_id,omitempty"`
	Title       string                   `json:"title"`
	Amount      float64                  `json:"amount"`
	Currency    string                   `json:"currency,omitempty"`
	Category    entities.ExpenseCategory `json:"category"`
	ExpenseDate time.Time                `json:"expense_date"`
	Notes       string                   `json:"notes,omitempty"`
}

type ExpensePatch struct {
	TankID      Opt[string]
	Title       *string
	Amount      *float64
	Currency    *string
	Category    *entities.ExpenseCategory
	ExpenseDate *time.Time
	Notes       *string
}

type BudgetInput struct {
	TankID   *string                   `json:"tank_id,omitempty"`
	Name     string                    `json:"name"`
	Amount   float64                   `json:"amount"`
	Currency string                    `json:"currency,omitempty"`
	Period   entities.BudgetPeriod     `json:"period,omitempty"`
	Category *entities.ExpenseCategory `json:"category,omitempty"`
	Notes    string                    `json:"notes,omitempty"`
}

type BudgetPatch struct {
	TankID   Opt[string]
	Name     *string
	Amount   *float64
	Currency *string
	Period   *entities.BudgetPeriod
	Category Opt[entities.ExpenseCategory]
	IsActive *bool
	Notes    *string
}

type PhotoInput struct {
	TankID      string     `json:"tank_id"`
	Filename    string     `json:"filename"`
	Caption     string     `json:"caption,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	SizeBytes   int64      `json:"size_bytes,omitempty"`
	TakenDate   *time.Time `json:"taken_date,omitempty"`
}

type PhotoPatch struct {
	Caption   *string
	TakenDate Opt[time.Time]
}
