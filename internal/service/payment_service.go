package service

import (
	"context"
	"net/http"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
)

// PaymentService wraps the /payments endpoints.
type PaymentService struct {
	api      apiClient
	payments resource[models.Payment]
}

// NewPaymentService constructs the payment service.
func NewPaymentService(api apiClient) *PaymentService {
	return &PaymentService{api: api, payments: newResource[models.Payment](api, "payments")}
}

func (s *PaymentService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Payment], error) {
	return s.payments.list(ctx, query)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	return s.payments.get(ctx, id)
}

func (s *PaymentService) Create(ctx context.Context, input dto.PaymentInput) (*models.Payment, error) {
	return s.payments.create(ctx, input)
}

func (s *PaymentService) Update(ctx context.Context, id string, input dto.PaymentInput) (*models.Payment, error) {
	return s.payments.update(ctx, id, input)
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	return s.payments.delete(ctx, id)
}

// MarkAsPaid requests the pending/overdue → paid transition.
func (s *PaymentService) MarkAsPaid(ctx context.Context, id string, input dto.MarkAsPaidInput) (*models.Payment, error) {
	p, err := s.payments.path(id, "pay")
	if err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, http.MethodPost, p, nil, input)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.Payment](raw)
}

// Overdue lists payments past their due date.
func (s *PaymentService) Overdue(ctx context.Context) ([]models.Payment, error) {
	return s.payments.slice(ctx, "overdue")
}

// ByStudent lists a student's payment history.
func (s *PaymentService) ByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	return s.payments.slice(ctx, "student", studentID)
}

// GenerateMonthly creates the tuition payments of one reference month.
func (s *PaymentService) GenerateMonthly(ctx context.Context, input dto.GenerateMonthlyInput) ([]models.Payment, error) {
	raw, err := s.api.Do(ctx, http.MethodPost, "payments/generate-monthly", nil, input)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeSlice[models.Payment](raw)
}
