package service

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// ExpenseService wraps the /expenses endpoints.
type ExpenseService struct {
	expenses resource[models.Expense]
}

// NewExpenseService constructs the expense service.
func NewExpenseService(api apiClient) *ExpenseService {
	return &ExpenseService{expenses: newResource[models.Expense](api, "expenses")}
}

func (s *ExpenseService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Expense], error) {
	return s.expenses.list(ctx, query)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (*models.Expense, error) {
	return s.expenses.get(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, input dto.ExpenseInput) (*models.Expense, error) {
	return s.expenses.create(ctx, input)
}

func (s *ExpenseService) Update(ctx context.Context, id string, input dto.ExpenseInput) (*models.Expense, error) {
	return s.expenses.update(ctx, id, input)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	return s.expenses.delete(ctx, id)
}
