package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestPaymentServiceGenerateMonthly(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/payments/generate-monthly": `{"data":[{"id":"p1","amount":"150.00","reference_month":"2024-02","status":"pending"}],"success":true}`,
	})
	svc := NewPaymentService(api)

	payments, err := svc.GenerateMonthly(context.Background(), dto.GenerateMonthlyInput{Month: 2, Year: 2024})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.Money(150), payments[0].Amount)

	req := backend.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, float64(2), req.Body["month"])
	assert.Equal(t, float64(2024), req.Body["year"])
}

func TestPaymentServiceMarkAsPaid(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"POST /api/payments/p1/pay": `{"id":"p1","amount":100,"discount":10,"late_fee":0,"status":"paid","payment_method":"pix","payment_date":"2024-02-10"}`,
	})
	svc := NewPaymentService(api)

	payment, err := svc.MarkAsPaid(context.Background(), "p1", dto.MarkAsPaidInput{PaymentMethod: models.MethodPix})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Equal(t, "2024-02-10", payment.PaymentDate.String())
	assert.Equal(t, "pix", backend.last().Body["payment_method"])
}

func TestPaymentServiceOverdueAndByStudent(t *testing.T) {
	backend, api := newFakeBackend(t, map[string]string{
		"GET /api/payments/overdue":    `[{"id":"p2","status":"overdue"}]`,
		"GET /api/payments/student/s1": `{"data":[{"id":"p3"},{"id":"p4"}]}`,
	})
	svc := NewPaymentService(api)

	overdue, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	assert.Len(t, overdue, 1)

	history, err := svc.ByStudent(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, 2, backend.count())
}
