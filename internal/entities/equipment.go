package entities

import "time"

type EquipmentCondition string

const (
	ConditionNew              EquipmentCondition = "new"
	ConditionUsed             EquipmentCondition = "used"
	ConditionRefurbished      EquipmentCondition = "refurbished"
	ConditionNeedsMaintenance EquipmentCondition = "needs_maintenance"
	ConditionFailing          EquipmentCondition = "failing"
)

type Equipment struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	Name          string `gorm:"size:255;index" json:"name"`
	EquipmentType string `gorm:"size:50;index" json:"equipment_type"` // pump, light, heater, skimmer, controller
	Manufacturer  string `gorm:"size:255" json:"manufacturer,omitempty"`
	Model         string `gorm:"size:255" json:"model,omitempty"`

	// Specs is an open map of named specifications ("power": "100W",
	// "flow_rate": "1000 GPH"), merged key-wise on partial update.
	Specs StringMap `gorm:"type:text" json:"specs,omitempty"`

	PurchaseDate  *time.Time         `json:"purchase_date,omitempty"`
	PurchasePrice string             `gorm:"size:50" json:"purchase_price,omitempty"`
	Condition     EquipmentCondition `gorm:"size:30" json:"condition,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}
