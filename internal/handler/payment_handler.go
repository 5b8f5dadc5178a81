package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/stats"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// PaymentHandler exposes tuition actions beyond the list and form.
type PaymentHandler struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{validate: validate, now: time.Now}
}

// StudentPayments is a student's payment history, grouped by year for the profile page.
type StudentPayments struct {
	Payments []models.Payment `json:"payments"`
	Years    []stats.YearGroup `json:"years"`
}

// Overdue godoc
// @Summary Overdue payments ordered by lateness
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /payments/overdue [get]
func (h *PaymentHandler) Overdue(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Payments
	if _, err := s.LoadOverdue(c.Request.Context()); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, stats.Overdue(s.Overdue(), h.now()))
		return
	}
	response.OK(c, stats.Overdue(s.Overdue(), h.now()))
}

// ByStudent godoc
// @Summary Payment history of a student
// @Tags Payments
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /payments/student/{studentId} [get]
func (h *PaymentHandler) ByStudent(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Payments
	if _, err := s.LoadByStudent(c.Request.Context(), c.Param("studentId")); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	payments := s.ByStudent()
	response.OK(c, StudentPayments{Payments: payments, Years: stats.GroupPaymentsByYear(payments)})
}

// Pay godoc
// @Summary Mark a payment as paid
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payload body dto.MarkAsPaidInput true "Settlement"
// @Success 200 {object} response.Envelope
// @Router /payments/{id}/pay [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	var input dto.MarkAsPaidInput
	if !bindInput(c, h.validate, &input) {
		return
	}
	s := stores.Payments
	paid, err := s.MarkAsPaid(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), map[string]interface{}{"entity": paid})
}

// GenerateMonthly godoc
// @Summary Generate the tuition of a month
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body dto.GenerateMonthlyInput true "Reference month"
// @Success 200 {object} response.Envelope
// @Router /payments/generate [post]
func (h *PaymentHandler) GenerateMonthly(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	var input dto.GenerateMonthlyInput
	if !bindInput(c, h.validate, &input) {
		return
	}
	s := stores.Payments
	generated, err := s.GenerateMonthly(c.Request.Context(), input.Month, input.Year)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusOK, s.Snapshot(), map[string]interface{}{"generated": len(generated)})
}
