package api

import (
	"context"
	"net/http"

	"github.com/reeflog/reeflog/internal/backend"
	"github.com/reeflog/reeflog/internal/entities"
)

type FinanceAdapter struct {
	client *Client
}

func NewFinanceAdapter(client *Client) *FinanceAdapter {
	return &FinanceAdapter{client: client}
}

func (a *FinanceAdapter) ListExpenses(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Expense, error) {
	var expenses []entities.Expense
	err := a.client.do(ctx, http.MethodGet, "/expenses", listQuery(f), nil, &expenses)
	return expenses, err
}

func (a *FinanceAdapter) GetExpense(ctx context.Context, _ string, id string) (*entities.Expense, error) {
	var expense entities.Expense
	if err := a.client.do(ctx, http.MethodGet, "/expenses/"+id, nil, nil, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (a *FinanceAdapter) CreateExpense(ctx context.Context, _ string, in backend.ExpenseInput) (*entities.Expense, error) {
	var expense entities.Expense
	if err := a.client.do(ctx, http.MethodPost, "/expenses", nil, in, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (a *FinanceAdapter) UpdateExpense(ctx context.Context, _ string, id string, p backend.ExpensePatch) (*entities.Expense, error) {
	body := map[string]any{}
	p.TankID.Apply(body, "tank_id")
	put(body, "title", p.Title)
	put(body, "amount", p.Amount)
	put(body, "currency", p.Currency)
	put(body, "category", p.Category)
	put(body, "expense_date", p.ExpenseDate)
	put(body, "notes", p.Notes)

	var expense entities.Expense
	if err := a.client.do(ctx, http.MethodPatch, "/expenses/"+id, nil, body, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (a *FinanceAdapter) DeleteExpense(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/expenses/"+id, nil, nil, nil)
}

func (a *FinanceAdapter) ListBudgets(ctx context.Context, _ string, f backend.ListFilter) ([]entities.Budget, error) {
	var budgets []entities.Budget
	err := a.client.do(ctx, http.MethodGet, "/budgets", listQuery(f), nil, &budgets)
	return budgets, err
}

func (a *FinanceAdapter) CreateBudget(ctx context.Context, _ string, in backend.BudgetInput) (*entities.Budget, error) {
	var budget entities.Budget
	if err := a.client.do(ctx, http.MethodPost, "/budgets", nil, in, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (a *FinanceAdapter) UpdateBudget(ctx context.Context, _ string, id string, p backend.BudgetPatch) (*entities.Budget, error) {
	body := map[string]any{}
	p.TankID.Apply(body, "tank_id")
	put(body, "name", p.Name)
	put(body, "amount", p.Amount)
	put(body, "currency", p.Currency)
	put(body, "period", p.Period)
	p.Category.Apply(body, "category")
	put(body, "is_active", p.IsActive)
	put(body, "notes", p.Notes)

	var budget entities.Budget
	if err := a.client.do(ctx, http.MethodPatch, "/budgets/"+id, nil, body, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (a *FinanceAdapter) DeleteBudget(ctx context.Context, _ string, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/budgets/"+id, nil, nil, nil)
}
