package entities

import "time"

// FeedingSchedule is a recurring feeding plan for a tank, optionally
// linked to a consumable food item so feeding deducts stock.
type FeedingSchedule struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	TankID       string  `gorm:"index;size:36" json:"tank_id"`
	UserID       string  `gorm:"index;size:36" json:"user_id"`
	ConsumableID *string `gorm:"index;size:36" json:"consumable_id,omitempty"`

	FoodName     string   `gorm:"size:255" json:"food_name"`
	Quantity     *float64 `json:"quantity,omitempty"`
	QuantityUnit string   `gorm:"size:20" json:"quantity_unit,omitempty"` // cube, pinch, ml, g, sheet, drop, piece

	FrequencyHours int        `gorm:"default:24" json:"frequency_hours"`
	LastFed        *time.Time `json:"last_fed,omitempty"`
	NextDue        *time.Time `gorm:"index" json:"next_due,omitempty"`

	IsActive bool   `gorm:"default:true;index" json:"is_active"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FeedingSchedule) TableName() string {
	return "feeding_schedules"
}

// FeedingLog is a single feeding event, created by marking a schedule
// fed or logged ad hoc.
type FeedingLog struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	TankID     string  `gorm:"index;size:36" json:"tank_id"`
	UserID     string  `gorm:"index;size:36" json:"user_id"`
	ScheduleID *string `gorm:"index;size:36" json:"schedule_id,omitempty"`

	FoodName     string    `gorm:"size:255" json:"food_name"`
	Quantity     *float64  `json:"quantity,omitempty"`
	QuantityUnit string    `gorm:"size:20" json:"quantity_unit,omitempty"`
	FedAt        time.Time `gorm:"index" json:"fed_at"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (FeedingLog) TableName() string {
	return "feeding_logs"
}
