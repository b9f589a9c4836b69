package entities

import "time"

type WaterType string

const (
	WaterTypeFreshwater WaterType = "freshwater"
	WaterTypeSaltwater  WaterType = "saltwater"
	WaterTypeBrackish   WaterType = "brackish"
)

type Tank struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"index;size:36" json:"user_id"`
	Name   string `gorm:"size:255" json:"name"`

	// Volumes are optional; not everyone measures precisely.
	DisplayVolumeLiters *float64 `json:"display_volume_liters"`
	SumpVolumeLiters    *float64 `json:"sump_volume_liters"`
	// TotalVolumeLiters is derived from the two volumes above and
	// recomputed on every write.
	TotalVolumeLiters float64 `json:"total_volume_liters"`

	WaterType       WaterType `gorm:"size:20;default:'saltwater'" json:"water_type"`
	AquariumSubtype string    `gorm:"size:50" json:"aquarium_subtype,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string `gorm:"size:2048" json:"image_url,omitempty"`

	SetupDate             *time.Time `json:"setup_date,omitempty"`
	ElectricityCostPerDay *float64   `json:"electricity_cost_per_day,omitempty"`

	HasRefugium           bool     `gorm:"default:false" json:"has_refugium"`
	RefugiumVolumeLiters  *float64 `json:"refugium_volume_liters,omitempty"`
	RefugiumType          string   `gorm:"size:50" json:"refugium_type,omitempty"`
	RefugiumAlgae         string   `gorm:"size:255" json:"refugium_algae,omitempty"`
	RefugiumLightingHours *float64 `json:"refugium_lighting_hours,omitempty"`
	RefugiumNotes         string   `gorm:"type:text" json:"refugium_notes,omitempty"`

	IsArchived bool `gorm:"default:false;index" json:"is_archived"`

	// ShareToken is NULL until sharing is first enabled; the unique
	// index only constrains rows that have one.
	ShareToken   *string `gorm:"size:16;uniqueIndex" json:"share_token,omitempty"`
	ShareEnabled bool   `gorm:"default:false" json:"share_enabled"`

	// Events is the owned event collection, attached on read, newest first.
	Events []TankEvent `gorm:"foreignKey:TankID" json:"events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Tank) TableName() string {
	return "tanks"
}

// TankEvent is a milestone in tank history (setup, rescape, upgrade, crash).
type TankEvent struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	EventDate   time.Time `gorm:"index" json:"event_date"`
	EventType   string    `gorm:"size:50" json:"event_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TankEvent) TableName() string {
	return "tank_events"
}
