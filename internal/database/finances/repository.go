// Package finances provides the local backend for expenses and
// budgets.
package finances

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListExpenses(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Expense, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.From != nil {
		q = q.Where("expense_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("expense_date <= ?", *f.To)
	}

	var expenses []entities.Expense
	err := q.Order("expense_date DESC").Find(&expenses).Error
	return expenses, err
}

func (r *Repository) GetExpense(ctx context.Context, userID, id string) (*entities.Expense, error) {
	var expense entities.Expense
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *Repository) CreateExpense(ctx context.Context, userID string, in backend.ExpenseInput) (*entities.Expense, error) {
	if in.Title == "" {
		return nil, &backend.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Amount < 0 {
		return nil, &backend.ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}
	category := in.Category
	if category == "" {
		category = entities.ExpenseCategoryOther
	}

	expense := &entities.Expense{
		ID:          uuid.NewString(),
		UserID:      userID,
		TankID:      in.TankID,
		Title:       in.Title,
		Amount:      in.Amount,
		Currency:    currency,
		Category:    category,
		ExpenseDate: in.ExpenseDate,
		Notes:       in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *Repository) UpdateExpense(ctx context.Context, userID, id string, p backend.ExpensePatch) (*entities.Expense, error) {
	expense, err := r.GetExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	p.TankID.Apply(updates, "tank_id")
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Amount != nil {
		if *p.Amount < 0 {
			return nil, &backend.ValidationError{Field: "amount", Reason: "must not be negative"}
		}
		updates["amount"] = *p.Amount
	}
	if p.Currency != nil {
		updates["currency"] = *p.Currency
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.ExpenseDate != nil {
		updates["expense_date"] = *p.ExpenseDate
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(expense).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetExpense(ctx, userID, id)
}

func (r *Repository) DeleteExpense(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context, userID string, f backend.ListFilter) ([]entities.Budget, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !f.IncludeArchived {
		q = q.Where("is_active = ?", true)
	}
	if f.TankID != "" {
		q = q.Where("tank_id = ?", f.TankID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var budgets []entities.Budget
	err := q.Order("created_at ASC").Find(&budgets).Error
	return budgets, err
}

func (r *Repository) CreateBudget(ctx context.Context, userID string, in backend.BudgetInput) (*entities.Budget, error) {
	if in.Name == "" {
		return nil, &backend.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.Amount <= 0 {
		return nil, &backend.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	currency := in.Currency
	if currency == "" {
		currency = "EUR"
	}
	period := in.Period
	if period == "" {
		period = entities.BudgetPeriodMonthly
	}

	budget := &entities.Budget{
		ID:       uuid.NewString(),
		UserID:   userID,
		TankID:   in.TankID,
		Name:     in.Name,
		Amount:   in.Amount,
		Currency: currency,
		Period:   period,
		Category: in.Category,
		IsActive: true,
		Notes:    in.Notes,
	}
	if err := r.db.WithContext(ctx).Create(budget).Error; err != nil {
		return nil, err
	}
	return budget, nil
}

func (r *Repository) UpdateBudget(ctx context.Context, userID, id string, p backend.BudgetPatch) (*entities.Budget, error) {
	var budget entities.Budget
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, backend.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	p.TankID.Apply(updates, "tank_id")
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Amount != nil {
		if *p.Amount <= 0 {
			return nil, &backend.ValidationError{Field: "amount", Reason: "must be positive"}
		}
		updates["amount"] = *p.Amount
	}
	if p.Currency != nil {
		updates["currency"] = *p.Currency
	}
	if p.Period != nil {
		updates["period"] = *p.Period
	}
	p.Category.Apply(updates, "category")
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&budget).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated entities.Budget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteBudget(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Budget{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}
