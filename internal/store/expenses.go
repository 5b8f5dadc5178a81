package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// ExpenseAPI is the expense service.
type ExpenseAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Expense], error)
	Get(ctx context.Context, id string) (*models.Expense, error)
	Create(ctx context.Context, input dto.ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id string, input dto.ExpenseInput) (*models.Expense, error)
	Delete(ctx context.Context, id string) error
}

// ExpenseStore holds academy expenses.
type ExpenseStore struct {
	*Collection[models.Expense, dto.ExpenseInput]
}

// NewExpenseStore constructs an expense store.
func NewExpenseStore(api ExpenseAPI, opts Options) *ExpenseStore {
	endpoints := Endpoints[models.Expense, dto.ExpenseInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	return &ExpenseStore{
		Collection: NewCollection("expenses", endpoints, expenseKey, crudMessages("despesas", "despesa"), opts),
	}
}
