package entities

import "time"

// MaintenanceReminder is a recurring chore (water change, filter sock
// swap, skimmer cleaning), optionally tied to a piece of equipment.
type MaintenanceReminder struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	TankID      string  `gorm:"index;size:36" json:"tank_id"`
	UserID      string  `gorm:"index;size:36" json:"user_id"`
	EquipmentID *string `gorm:"index;size:36" json:"equipment_id,omitempty"`

	Title         string `gorm:"size:255" json:"title"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	FrequencyDays int    `json:"frequency_days"`

	NextDueDate  *time.Time `gorm:"index" json:"next_due_date,omitempty"`
	LastDoneDate *time.Time `json:"last_done_date,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MaintenanceReminder) TableName() string {
	return "maintenance_reminders"
}
