package entities

import "time"

// LightingSchedule is a named per-tank light profile: an ordered list
// of LED channels plus an hour-keyed intensity grid. Only one schedule
// per tank is active at a time.
type LightingSchedule struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Channels LightChannels `gorm:"type:text" json:"channels"`
	// ScheduleData maps hour-of-day ("0".."23") to per-channel
	// intensities (0-100). Hours absent from a partial update keep
	// their stored values.
	ScheduleData IntensityMap `gorm:"type:text" json:"schedule_data"`

	IsActive bool   `gorm:"default:false" json:"is_active"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LightingSchedule) TableName() string {
	return "lighting_schedules"
}
