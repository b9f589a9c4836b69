package entities

import "time"

// ParameterReading is a single water test value: one parameter, one
// tank, one point in time. A full test session produces one row per
// parameter measured, all sharing the same timestamp.
type ParameterReading struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	ParameterType string    `gorm:"size:50;index" json:"parameter_type"` // calcium, alkalinity_kh, nitrate, ph, ...
	Value         float64   `json:"value"`
	MeasuredAt    time.Time `gorm:"index" json:"measured_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (ParameterReading) TableName() string {
	return "parameter_readings"
}
