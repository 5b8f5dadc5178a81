package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

var now = time.Date(2024, time.February, 15, 19, 30, 0, 0, time.UTC) // Thursday

func TestDaysOverdue(t *testing.T) {
	cases := []struct {
		name string
		due  models.Date
		want int
	}{
		{name: "future", due: models.NewDate(2024, time.March, 1), want: 0},
		{name: "same day", due: models.NewDate(2024, time.February, 15), want: 0},
		{name: "ten days", due: models.NewDate(2024, time.February, 5), want: 10},
		{name: "across month", due: models.NewDate(2024, time.January, 31), want: 15},
		{name: "zero date", due: models.Date{}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysOverdue(tc.due, now))
		})
	}
}

func TestFinalAmount(t *testing.T) {
	assert.Equal(t, models.Money(90), FinalAmount(models.Payment{Amount: 100, Discount: 10}))
	assert.Equal(t, models.Money(105), FinalAmount(models.Payment{Amount: 100, LateFee: 5}))
	assert.Equal(t, models.Money(0), FinalAmount(models.Payment{Amount: 10, Discount: 20}))
}

func TestFinancialSummary(t *testing.T) {
	payments := []models.Payment{
		{ID: "1", Amount: 100, Discount: 10, Status: models.PaymentPaid, PaymentDate: models.NewDate(2024, time.February, 3)},
		{ID: "2", Amount: 150, Status: models.PaymentPaid, PaymentDate: models.NewDate(2024, time.January, 3)},
		{ID: "3", Amount: 120, Status: models.PaymentPending, DueDate: models.NewDate(2024, time.February, 20)},
		{ID: "4", Amount: 120, LateFee: 6, Status: models.PaymentPending, DueDate: models.NewDate(2024, time.February, 10)},
		{ID: "5", Amount: 80, Status: models.PaymentOverdue, DueDate: models.NewDate(2024, time.January, 10)},
		{ID: "6", Amount: 99, Status: models.PaymentCancelled},
	}
	expenses := []models.Expense{
		{Amount: 50, Status: models.ExpensePaid, ExpenseDate: models.NewDate(2024, time.February, 1)},
		{Amount: 30, Status: models.ExpensePaid, PaymentDate: models.NewDate(2024, time.January, 30)},
		{Amount: 25, Status: models.ExpensePending},
	}

	got := Financial(payments, expenses, now)

	assert.Equal(t, models.Money(240), got.TotalReceived)
	assert.Equal(t, models.Money(90), got.MonthlyRevenue)
	assert.Equal(t, models.Money(120), got.TotalPending)
	assert.Equal(t, models.Money(206), got.TotalOverdue)
	assert.Equal(t, models.Money(80), got.TotalExpenses)
	assert.Equal(t, models.Money(50), got.MonthlyExpenses)
	assert.Equal(t, models.Money(25), got.PendingExpenses)
	assert.Equal(t, models.Money(160), got.Balance)
	assert.Equal(t, 2, got.PaidCount)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, 2, got.OverdueCount)
	assert.Equal(t, 1, got.CancelledCount)
	assert.Equal(t, 40, got.DefaultRate)
}

func TestFinancialSummaryEmpty(t *testing.T) {
	assert.Equal(t, FinancialSummary{}, Financial(nil, nil, now))
}

func TestOverdueSortedByLateness(t *testing.T) {
	payments := []models.Payment{
		{ID: "a", Amount: 100, Status: models.PaymentPending, DueDate: models.NewDate(2024, time.February, 10)},
		{ID: "b", Amount: 100, Status: models.PaymentOverdue, DueDate: models.NewDate(2024, time.January, 10)},
		{ID: "c", Amount: 100, Status: models.PaymentPaid, DueDate: models.NewDate(2024, time.January, 1)},
	}
	entries := Overdue(payments, now)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Payment.ID)
	assert.Equal(t, 36, entries[0].DaysOverdue)
	assert.Equal(t, "a", entries[1].Payment.ID)
	assert.Equal(t, 5, entries[1].DaysOverdue)
}

func TestGroupPaymentsByYear(t *testing.T) {
	payments := []models.Payment{
		{ID: "1", Amount: 100, ReferenceMonth: "2023-12"},
		{ID: "2", Amount: 100, ReferenceMonth: "2024-01"},
		{ID: "3", Amount: 50, DueDate: models.NewDate(2024, time.February, 10)},
		{ID: "4", Amount: 70, ReferenceMonth: "2022-05", Status: models.PaymentCancelled},
	}
	groups := GroupPaymentsByYear(payments)
	require.Len(t, groups, 3)
	assert.Equal(t, 2024, groups[0].Year)
	assert.Len(t, groups[0].Payments, 2)
	assert.Equal(t, models.Money(150), groups[0].Total)
	assert.Equal(t, 2023, groups[1].Year)
	assert.Equal(t, 2022, groups[2].Year)
	assert.Equal(t, models.Money(0), groups[2].Total)

	assert.Empty(t, GroupPaymentsByYear(nil))
}
