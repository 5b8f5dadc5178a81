package models

// PaymentStatus tracks a tuition obligation. Transitions happen server-side.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentMethod lists accepted settlement channels.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodPix          PaymentMethod = "pix"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is a monthly fee owed by a student.
type Payment struct {
	ID             string        `json:"id"`
	StudentID      string        `json:"student_id"`
	Student        *Summary      `json:"student,omitempty"`
	Amount         Money         `json:"amount"`
	Discount       Money         `json:"discount"`
	LateFee        Money         `json:"late_fee"`
	DueDate        Date          `json:"due_date"`
	PaymentDate    Date          `json:"payment_date"`
	ReferenceMonth string        `json:"reference_month"`
	Status         PaymentStatus `json:"status"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      Date          `json:"created_at"`
	UpdatedAt      Date          `json:"updated_at"`
}
