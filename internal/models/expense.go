package models

// ExpenseStatus tracks settlement of an academy expense.
type ExpenseStatus string

const (
	ExpensePending   ExpenseStatus = "pending"
	ExpensePaid      ExpenseStatus = "paid"
	ExpenseCancelled ExpenseStatus = "cancelled"
)

// Expense is an outgoing cost unrelated to students or teachers.
type Expense struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Amount        Money         `json:"amount"`
	Category      string        `json:"category"`
	ExpenseDate   Date          `json:"expense_date"`
	DueDate       Date          `json:"due_date"`
	PaymentDate   Date          `json:"payment_date"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Status        ExpenseStatus `json:"status"`
	Supplier      string        `json:"supplier,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     Date          `json:"created_at"`
	UpdatedAt     Date          `json:"updated_at"`
}
