package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestMarkAsPaidReplacesPaymentAndLeavesOverdue(t *testing.T) {
	pending := models.Payment{ID: "p1", Amount: 100, Discount: 10, LateFee: 0, Status: models.PaymentOverdue}
	other := models.Payment{ID: "p2", Amount: 150, Status: models.PaymentPending}

	api := newFakePaymentAPI()
	api.listFn = func(context.Context, models.ListQuery) (*models.ListResult[models.Payment], error) {
		return &models.ListResult[models.Payment]{Data: []models.Payment{pending, other}, Total: 2, Page: 1, Limit: 10, TotalPages: 1}, nil
	}
	api.overdue = []models.Payment{pending}
	api.paid = &models.Payment{Amount: 100, Discount: 10, Status: models.PaymentPaid, PaymentMethod: models.MethodPix}

	s := NewPaymentStore(api, Options{})
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, nil))
	_, err := s.LoadOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, s.Overdue(), 1)
	calls := len(api.listCalls())

	paid, err := s.MarkAsPaid(ctx, "p1", dto.MarkAsPaidInput{PaymentMethod: models.MethodPix})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.Status)
	assert.Equal(t, models.MethodPix, api.paidInput.PaymentMethod)

	state := s.Snapshot()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "p1", state.Items[0].ID)
	assert.Equal(t, models.PaymentPaid, state.Items[0].Status)
	assert.Equal(t, other, state.Items[1])
	assert.Empty(t, s.Overdue())
	assert.Len(t, api.listCalls(), calls)
	assert.False(t, state.IsLoading(OpPay))
}

func TestGenerateMonthlyPrependsAndRefetches(t *testing.T) {
	existing := models.Payment{ID: "old"}
	api := newFakePaymentAPI()
	api.listFn = func(context.Context, models.ListQuery) (*models.ListResult[models.Payment], error) {
		return &models.ListResult[models.Payment]{Data: []models.Payment{existing}, Total: 1, Page: 1, Limit: 10, TotalPages: 1}, nil
	}
	api.generated = []models.Payment{{ID: "g1", ReferenceMonth: "2024-02"}, {ID: "g2", ReferenceMonth: "2024-02"}}

	s := NewPaymentStore(api, Options{})
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, nil))

	var seen []string
	unsubscribe := s.Subscribe(func(st State[models.Payment]) {
		if len(st.Items) > 0 {
			seen = append(seen, st.Items[0].ID)
		}
	})
	defer unsubscribe()

	generated, err := s.GenerateMonthly(ctx, 2, 2024)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	assert.Equal(t, []dto.GenerateMonthlyInput{{Month: 2, Year: 2024}}, api.generateIn)
	assert.Contains(t, seen, "g1")
	assert.Len(t, api.listCalls(), 2)
	assert.Equal(t, []models.Payment{existing}, s.Snapshot().Items)
}

func TestGenerateMonthlyEmptyResultSkipsRefetch(t *testing.T) {
	api := newFakePaymentAPI()
	s := NewPaymentStore(api, Options{})

	generated, err := s.GenerateMonthly(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Empty(t, generated)
	assert.Empty(t, api.listCalls())
}

func TestCheckinCreateAppearsInToday(t *testing.T) {
	api := &fakeCheckinAPI{fakeCRUD: &fakeCRUD[models.Checkin, dto.CheckinInput]{}}
	api.today = []models.Checkin{{ID: "c0"}}
	api.createFn = func(in dto.CheckinInput) (*models.Checkin, error) {
		return &models.Checkin{ID: "c1", StudentID: in.StudentID, ClassID: in.ClassID, Method: in.Method}, nil
	}
	s := NewCheckinStore(api, Options{})
	ctx := context.Background()

	_, err := s.LoadToday(ctx)
	require.NoError(t, err)
	_, err = s.Create(ctx, dto.CheckinInput{StudentID: "s1", ClassID: "k1", Method: models.CheckinManual})
	require.NoError(t, err)

	today := s.Today()
	require.Len(t, today, 2)
	assert.Equal(t, "c1", today[0].ID)

	require.NoError(t, s.Delete(ctx, "c0"))
	assert.Len(t, s.Today(), 1)
}

func TestBackdatedCheckinStaysOutOfToday(t *testing.T) {
	now := time.Date(2026, time.October, 17, 15, 0, 0, 0, time.UTC)
	api := &fakeCheckinAPI{fakeCRUD: &fakeCRUD[models.Checkin, dto.CheckinInput]{}}
	api.createFn = func(in dto.CheckinInput) (*models.Checkin, error) {
		at, err := models.ParseDate(in.CheckinTime)
		if err != nil {
			return nil, err
		}
		return &models.Checkin{ID: "c-" + in.CheckinTime, StudentID: in.StudentID, CheckinTime: at}, nil
	}
	s := NewCheckinStore(api, Options{})
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := s.Create(ctx, dto.CheckinInput{StudentID: "s1", ClassID: "k1", CheckinTime: "2026-10-15T18:30:00Z", Method: models.CheckinManual})
	require.NoError(t, err)
	assert.Empty(t, s.Today())

	_, err = s.Create(ctx, dto.CheckinInput{StudentID: "s1", ClassID: "k1", CheckinTime: "2026-10-17T09:00:00Z", Method: models.CheckinManual})
	require.NoError(t, err)
	today := s.Today()
	require.Len(t, today, 1)
	assert.Equal(t, "c-2026-10-17T09:00:00Z", today[0].ID)
}
