package entities

import "time"

type LivestockType string

const (
	LivestockTypeFish         LivestockType = "fish"
	LivestockTypeCoral        LivestockType = "coral"
	LivestockTypeInvertebrate LivestockType = "invertebrate"
)

type LivestockStatus string

const (
	LivestockStatusAlive   LivestockStatus = "alive"
	LivestockStatusDead    LivestockStatus = "dead"
	LivestockStatusRemoved LivestockStatus = "removed"
)

type Livestock struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	SpeciesName string        `gorm:"size:255" json:"species_name"`
	CommonName  string        `gorm:"size:255" json:"common_name,omitempty"`
	Type        LivestockType `gorm:"size:20;index" json:"type"`

	// External species database reference (e.g. FishBase species id).
	SpeciesRef string `gorm:"size:64" json:"species_ref,omitempty"`

	Quantity   int             `gorm:"default:1" json:"quantity"`
	Status     LivestockStatus `gorm:"size:20;default:'alive';index" json:"status"`
	StatusDate *time.Time      `json:"status_date,omitempty"`

	AddedDate  *time.Time `json:"added_date,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	IsArchived bool       `gorm:"default:false;index" json:"is_archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Livestock) TableName() string {
	return "livestock"
}
