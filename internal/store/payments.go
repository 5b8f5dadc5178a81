package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// PaymentAPI is the slice of the payment service used by PaymentStore.
type PaymentAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Payment], error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	Create(ctx context.Context, input dto.PaymentInput) (*models.Payment, error)
	Update(ctx context.Context, id string, input dto.PaymentInput) (*models.Payment, error)
	Delete(ctx context.Context, id string) error
	MarkAsPaid(ctx context.Context, id string, input dto.MarkAsPaidInput) (*models.Payment, error)
	Overdue(ctx context.Context) ([]models.Payment, error)
	ByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	GenerateMonthly(ctx context.Context, input dto.GenerateMonthlyInput) ([]models.Payment, error)
}

// PaymentStore holds tuition payments and the overdue list.
type PaymentStore struct {
	*Collection[models.Payment, dto.PaymentInput]

	api       PaymentAPI
	overdue   []models.Payment
	byStudent []models.Payment
}

// NewPaymentStore constructs a payment store.
func NewPaymentStore(api PaymentAPI, opts Options) *PaymentStore {
	endpoints := Endpoints[models.Payment, dto.PaymentInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("pagamentos", "pagamento"), map[Op]string{
		OpOverdue:   "Erro ao carregar pagamentos em atraso",
		OpByStudent: "Erro ao carregar pagamentos do aluno",
		OpPay:       "Erro ao marcar pagamento como pago",
		OpGenerate:  "Erro ao gerar mensalidades",
	})
	return &PaymentStore{
		Collection: NewCollection("payments", endpoints, paymentKey, messages, opts),
		api:        api,
	}
}

// LoadOverdue loads every overdue payment.
func (s *PaymentStore) LoadOverdue(ctx context.Context) ([]models.Payment, error) {
	return load(ctx, s.Collection, OpOverdue, s.api.Overdue, func(payments []models.Payment) {
		s.overdue = copyOf(payments)
	})
}

// LoadByStudent loads a student's payment history.
func (s *PaymentStore) LoadByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	return load(ctx, s.Collection, OpByStudent, func(ctx context.Context) ([]models.Payment, error) {
		return s.api.ByStudent(ctx, studentID)
	}, func(payments []models.Payment) {
		s.byStudent = copyOf(payments)
	})
}

// MarkAsPaid settles a payment. The returned entity replaces the local copy by id and
// the payment leaves the overdue list.
func (s *PaymentStore) MarkAsPaid(ctx context.Context, id string, input dto.MarkAsPaidInput) (*models.Payment, error) {
	var paid *models.Payment
	err := s.run(OpPay, false, func() error {
		var err error
		paid, err = s.api.MarkAsPaid(ctx, id, input)
		return err
	}, func(st *State[models.Payment]) {
		s.replace(st, id, *paid)
		s.overdue = withoutPayment(s.overdue, id)
		for i := range s.byStudent {
			if s.byStudent[i].ID == id {
				s.byStudent[i] = *paid
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// GenerateMonthly asks the backend to create the tuition of a reference month. A
// non-empty result is prepended to the list and the page is refetched.
func (s *PaymentStore) GenerateMonthly(ctx context.Context, month, year int) ([]models.Payment, error) {
	var generated []models.Payment
	err := s.run(OpGenerate, false, func() error {
		var err error
		generated, err = s.api.GenerateMonthly(ctx, dto.GenerateMonthlyInput{Month: month, Year: year})
		return err
	}, func(st *State[models.Payment]) {
		if len(generated) > 0 {
			st.Items = append(copyOf(generated), st.Items...)
		}
	})
	if err != nil {
		return nil, err
	}
	if len(generated) > 0 {
		s.resync(ctx, OpGenerate)
	}
	return generated, nil
}

// Overdue returns the last loaded overdue list.
func (s *PaymentStore) Overdue() []models.Payment {
	var out []models.Payment
	s.read(func() { out = copyOf(s.overdue) })
	return out
}

// ByStudent returns the last loaded student history.
func (s *PaymentStore) ByStudent() []models.Payment {
	var out []models.Payment
	s.read(func() { out = copyOf(s.byStudent) })
	return out
}

func withoutPayment(payments []models.Payment, id string) []models.Payment {
	kept := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return kept
}
