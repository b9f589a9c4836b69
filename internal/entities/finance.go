package entities

import "time"

type ExpenseCategory string

const (
	ExpenseCategoryEquipment   ExpenseCategory = "equipment"
	ExpenseCategoryConsumables ExpenseCategory = "consumables"
	ExpenseCategoryLivestock   ExpenseCategory = "livestock"
	ExpenseCategoryICPTests    ExpenseCategory = "icp_tests"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// Expense is a single purchase or running cost. TankID may be empty for
// costs not attributable to one tank.
type Expense struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	UserID string  `gorm:"index;size:36" json:"user_id"`
	TankID *string `gorm:"index;size:36" json:"tank_id,omitempty"`

	Title       string          `gorm:"size:255" json:"title"`
	Amount      float64         `json:"amount"`
	Currency    string          `gorm:"size:3;default:'EUR'" json:"currency"`
	Category    ExpenseCategory `gorm:"size:30;index" json:"category"`
	ExpenseDate time.Time       `gorm:"index" json:"expense_date"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget is a spending cap, global or per tank, optionally narrowed to
// one expense category.
type Budget struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	UserID string  `gorm:"index;size:36" json:"user_id"`
	TankID *string `gorm:"index;size:36" json:"tank_id,omitempty"`

	Name     string           `gorm:"size:255" json:"name"`
	Amount   float64          `json:"amount"`
	Currency string           `gorm:"size:3;default:'EUR'" json:"currency"`
	Period   BudgetPeriod     `gorm:"size:10;default:'monthly'" json:"period"`
	Category *ExpenseCategory `gorm:"size:30" json:"category,omitempty"` // nil = all categories
	IsActive bool             `gorm:"default:true" json:"is_active"`
	Notes    string           `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}
