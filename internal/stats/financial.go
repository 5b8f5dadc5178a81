package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// FinancialSummary aggregates already loaded payments and expenses.
type FinancialSummary struct {
	TotalReceived   models.Money `json:"total_received"`
	TotalPending    models.Money `json:"total_pending"`
	TotalOverdue    models.Money `json:"total_overdue"`
	TotalExpenses   models.Money `json:"total_expenses"`
	PendingExpenses models.Money `json:"pending_expenses"`
	Balance         models.Money `json:"balance"`
	MonthlyRevenue  models.Money `json:"monthly_revenue"`
	MonthlyExpenses models.Money `json:"monthly_expenses"`
	PaidCount       int          `json:"paid_count"`
	PendingCount    int          `json:"pending_count"`
	OverdueCount    int          `json:"overdue_count"`
	CancelledCount  int          `json:"cancelled_count"`
	DefaultRate     int          `json:"default_rate"`
}

// YearGroup is the payments of one calendar year.
type YearGroup struct {
	Year     int              `json:"year"`
	Total    models.Money     `json:"total"`
	Payments []models.Payment `json:"payments"`
}

// OverdueEntry decorates an overdue payment with its lateness and amount due.
type OverdueEntry struct {
	Payment     models.Payment `json:"payment"`
	DaysOverdue int            `json:"days_overdue"`
	AmountDue   models.Money   `json:"amount_due"`
}

// FinalAmount is amount minus discount plus late fee, never negative.
func FinalAmount(p models.Payment) models.Money {
	total := p.Amount - p.Discount + p.LateFee
	if total < 0 {
		return 0
	}
	return total
}

// DaysOverdue counts whole calendar days since due. Future and same-day due dates give 0.
func DaysOverdue(due models.Date, now time.Time) int {
	if due.IsZero() {
		return 0
	}
	dueDay := civil(due.Time)
	today := civil(now)
	days := int(today.Sub(dueDay).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether a payment is flagged overdue, or still pending past its due date.
func IsOverdue(p models.Payment, now time.Time) bool {
	switch p.Status {
	case models.PaymentOverdue:
		return true
	case models.PaymentPending:
		return DaysOverdue(p.DueDate, now) > 0
	}
	return false
}

// Financial summarises payments and expenses as of now.
func Financial(payments []models.Payment, expenses []models.Expense, now time.Time) FinancialSummary {
	var summary FinancialSummary
	for _, p := range payments {
		amount := FinalAmount(p)
		switch {
		case p.Status == models.PaymentPaid:
			summary.PaidCount++
			summary.TotalReceived += amount
			if sameMonth(p.PaymentDate.Time, now) {
				summary.MonthlyRevenue += amount
			}
		case p.Status == models.PaymentCancelled:
			summary.CancelledCount++
		case IsOverdue(p, now):
			summary.OverdueCount++
			summary.TotalOverdue += amount
		default:
			summary.PendingCount++
			summary.TotalPending += amount
		}
	}
	for _, e := range expenses {
		switch e.Status {
		case models.ExpensePaid:
			summary.TotalExpenses += e.Amount
			if sameMonth(expenseDay(e), now) {
				summary.MonthlyExpenses += e.Amount
			}
		case models.ExpensePending:
			summary.PendingExpenses += e.Amount
		}
	}
	summary.Balance = summary.TotalReceived - summary.TotalExpenses
	billable := summary.PaidCount + summary.PendingCount + summary.OverdueCount
	summary.DefaultRate = FillPercentage(summary.OverdueCount, billable)
	return summary
}

// Overdue lists overdue payments, most late first.
func Overdue(payments []models.Payment, now time.Time) []OverdueEntry {
	entries := make([]OverdueEntry, 0)
	for _, p := range payments {
		if !IsOverdue(p, now) {
			continue
		}
		entries = append(entries, OverdueEntry{Payment: p, DaysOverdue: DaysOverdue(p.DueDate, now), AmountDue: FinalAmount(p)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysOverdue > entries[j].DaysOverdue
	})
	return entries
}

// GroupPaymentsByYear buckets payments by the year of their reference month, newest year first.
// Payments without a reference month fall back to the due date year.
func GroupPaymentsByYear(payments []models.Payment) []YearGroup {
	index := map[int]int{}
	groups := make([]YearGroup, 0)
	for _, p := range payments {
		year := paymentYear(p)
		i, ok := index[year]
		if !ok {
			i = len(groups)
			index[year] = i
			groups = append(groups, YearGroup{Year: year})
		}
		groups[i].Payments = append(groups[i].Payments, p)
		if p.Status != models.PaymentCancelled {
			groups[i].Total += FinalAmount(p)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Year > groups[j].Year
	})
	return groups
}

func paymentYear(p models.Payment) int {
	if len(p.ReferenceMonth) >= 4 {
		if year, err := strconv.Atoi(p.ReferenceMonth[:4]); err == nil {
			return year
		}
	}
	return p.DueDate.Year()
}

func expenseDay(e models.Expense) time.Time {
	if !e.PaymentDate.IsZero() {
		return e.PaymentDate.Time
	}
	return e.ExpenseDate.Time
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameMonth(t, now time.Time) bool {
	return !t.IsZero() && t.Year() == now.Year() && t.Month() == now.Month()
}
