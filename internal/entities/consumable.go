package entities

import "time"

type ConsumableStatus string

const (
	ConsumableStatusActive   ConsumableStatus = "active"
	ConsumableStatusLowStock ConsumableStatus = "low_stock"
	ConsumableStatusDepleted ConsumableStatus = "depleted"
	ConsumableStatusExpired  ConsumableStatus = "expired"
)

type Consumable struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	TankID string `gorm:"index;size:36" json:"tank_id"`
	UserID string `gorm:"index;size:36" json:"user_id"`

	Name           string `gorm:"size:255;index" json:"name"`
	ConsumableType string `gorm:"size:50;index" json:"consumable_type"` // salt_mix, additive, food, filter_media, test_kit, medication
	Brand          string `gorm:"size:255" json:"brand,omitempty"`
	ProductName    string `gorm:"size:255" json:"product_name,omitempty"`

	QuantityOnHand *float64 `json:"quantity_on_hand,omitempty"`
	QuantityUnit   string   `gorm:"size:20" json:"quantity_unit,omitempty"` // ml, L, g, kg, pieces, drops

	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice string     `gorm:"size:50" json:"purchase_price,omitempty"`
	PurchaseURL   string     `gorm:"size:2048" json:"purchase_url,omitempty"`

	ExpirationDate *time.Time `json:"expiration_date,omitempty"`

	Status ConsumableStatus `gorm:"size:20;default:'active';index" json:"status"`
	Notes  string           `gorm:"type:text" json:"notes,omitempty"`

	// UsageRecords is the owned dosing history, attached on read, newest first.
	UsageRecords []ConsumableUsage `gorm:"foreignKey:ConsumableID" json:"usage_records,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Consumable) TableName() string {
	return "consumables"
}

// ConsumableUsage is a single dosing/usage event for a consumable.
type ConsumableUsage struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	ConsumableID string `gorm:"index;size:36" json:"consumable_id"`
	UserID       string `gorm:"index;size:36" json:"user_id"`

	UsageDate    time.Time `gorm:"index" json:"usage_date"`
	QuantityUsed float64   `json:"quantity_used"`
	QuantityUnit string    `gorm:"size:20" json:"quantity_unit,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ConsumableUsage) TableName() string {
	return "consumable_usage"
}
