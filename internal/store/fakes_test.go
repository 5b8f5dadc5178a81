package store

import (
	"context"
	"io"
	"sync"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

type fakeCRUD[T, In any] struct {
	mu      sync.Mutex
	queries []models.ListQuery
	created []In

	listFn   func(ctx context.Context, query models.ListQuery) (*models.ListResult[T], error)
	getFn    func(id string) (*T, error)
	createFn func(input In) (*T, error)
	updateFn func(id string, input In) (*T, error)
	deleteFn func(id string) error
}

func (f *fakeCRUD[T, In]) List(ctx context.Context, query models.ListQuery) (*models.ListResult[T], error) {
	f.mu.Lock()
	f.queries = append(f.queries, models.ListQuery{Filter: query.Filter.Clone(), Page: query.Page, Limit: query.Limit})
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return &models.ListResult[T]{Data: []T{}, Page: query.Page, Limit: query.Limit}, nil
	}
	return fn(ctx, query)
}

func (f *fakeCRUD[T, In]) Get(_ context.Context, id string) (*T, error) {
	if f.getFn == nil {
		return new(T), nil
	}
	return f.getFn(id)
}

func (f *fakeCRUD[T, In]) Create(_ context.Context, input In) (*T, error) {
	f.mu.Lock()
	f.created = append(f.created, input)
	f.mu.Unlock()
	if f.createFn == nil {
		return new(T), nil
	}
	return f.createFn(input)
}

func (f *fakeCRUD[T, In]) Update(_ context.Context, id string, input In) (*T, error) {
	if f.updateFn == nil {
		return new(T), nil
	}
	return f.updateFn(id, input)
}

func (f *fakeCRUD[T, In]) Delete(_ context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

func (f *fakeCRUD[T, In]) listCalls() []models.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ListQuery(nil), f.queries...)
}

type fakeStudentAPI struct {
	*fakeCRUD[models.Student, dto.StudentInput]
	classesFn  func(id string) ([]models.Class, error)
	enrolled   []string
	unenrolled []string
}

func newFakeStudentAPI() *fakeStudentAPI {
	return &fakeStudentAPI{fakeCRUD: &fakeCRUD[models.Student, dto.StudentInput]{}}
}

func (f *fakeStudentAPI) Classes(_ context.Context, id string) ([]models.Class, error) {
	if f.classesFn == nil {
		return []models.Class{}, nil
	}
	return f.classesFn(id)
}

func (f *fakeStudentAPI) Enroll(_ context.Context, id, classID string) error {
	f.enrolled = append(f.enrolled, id+":"+classID)
	return nil
}

func (f *fakeStudentAPI) Unenroll(_ context.Context, id, classID string) error {
	f.unenrolled = append(f.unenrolled, id+":"+classID)
	return nil
}

type fakeByStudent[T any] struct {
	fn func(id string) ([]T, error)
}

func (f fakeByStudent[T]) ByStudent(_ context.Context, id string) ([]T, error) {
	if f.fn == nil {
		return []T{}, nil
	}
	return f.fn(id)
}

type fakePaymentAPI struct {
	*fakeCRUD[models.Payment, dto.PaymentInput]
	overdue    []models.Payment
	paid       *models.Payment
	paidInput  dto.MarkAsPaidInput
	generated  []models.Payment
	generateIn []dto.GenerateMonthlyInput
}

func newFakePaymentAPI() *fakePaymentAPI {
	return &fakePaymentAPI{fakeCRUD: &fakeCRUD[models.Payment, dto.PaymentInput]{}}
}

func (f *fakePaymentAPI) MarkAsPaid(_ context.Context, id string, input dto.MarkAsPaidInput) (*models.Payment, error) {
	f.paidInput = input
	paid := *f.paid
	paid.ID = id
	return &paid, nil
}

func (f *fakePaymentAPI) Overdue(context.Context) ([]models.Payment, error) {
	return f.overdue, nil
}

func (f *fakePaymentAPI) ByStudent(context.Context, string) ([]models.Payment, error) {
	return []models.Payment{}, nil
}

func (f *fakePaymentAPI) GenerateMonthly(_ context.Context, input dto.GenerateMonthlyInput) ([]models.Payment, error) {
	f.generateIn = append(f.generateIn, input)
	return f.generated, nil
}

type fakeCheckinAPI struct {
	*fakeCRUD[models.Checkin, dto.CheckinInput]
	today []models.Checkin
}

func (f *fakeCheckinAPI) Today(context.Context) ([]models.Checkin, error) {
	return f.today, nil
}

func (f *fakeCheckinAPI) ByStudent(context.Context, string) ([]models.Checkin, error) {
	return []models.Checkin{}, nil
}

func (f *fakeCheckinAPI) ByClass(context.Context, string) ([]models.Checkin, error) {
	return []models.Checkin{}, nil
}

type fakeBeltAPI struct {
	*fakeCRUD[models.BeltPromotion, dto.PromotionInput]
	promoted models.BeltPromotion
	overview models.BeltOverview
}

func (f *fakeBeltAPI) Promote(_ context.Context, input dto.PromoteInput) (*models.BeltPromotion, error) {
	p := f.promoted
	p.StudentID = input.StudentID
	p.NewBelt = input.NewBelt
	return &p, nil
}

func (f *fakeBeltAPI) Overview(context.Context) (*models.BeltOverview, error) {
	o := f.overview
	return &o, nil
}

func (f *fakeBeltAPI) StudentProgress(_ context.Context, id string) (*models.BeltProgress, error) {
	return &models.BeltProgress{StudentID: id, CurrentBelt: models.BeltBlue}, nil
}

type fakeVideoAPI struct {
	*fakeCRUD[models.Video, dto.VideoInput]
	uploadedName string
}

func (f *fakeVideoAPI) Upload(_ context.Context, input dto.UploadVideoInput, filename, _ string, content io.Reader) (*models.Video, error) {
	f.uploadedName = filename
	_, _ = io.Copy(io.Discard, content)
	return &models.Video{ID: "v-new", Title: input.Title}, nil
}

func (f *fakeVideoAPI) ByModule(context.Context, string) ([]models.Video, error) {
	return []models.Video{{ID: "v1"}}, nil
}

func (f *fakeVideoAPI) ByClass(context.Context, string) ([]models.Video, error) {
	return []models.Video{}, nil
}

func (f *fakeVideoAPI) Free(context.Context) ([]models.Video, error) {
	return []models.Video{{ID: "v2", IsFree: true}}, nil
}

type recorder struct {
	mu         sync.Mutex
	actions    map[string]int
	superseded map[string]int
}

func newRecorder() *recorder {
	return &recorder{actions: map[string]int{}, superseded: map[string]int{}}
}

func (r *recorder) ObserveStoreAction(store, op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.actions[store+"/"+op+"/"+outcome]++
}

func (r *recorder) ObserveSuperseded(store, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.superseded[store+"/"+op]++
}

func students(names ...string) []models.Student {
	out := make([]models.Student, 0, len(names))
	for i, name := range names {
		out = append(out, models.Student{ID: string(rune('a' + i)), Name: name})
	}
	return out
}
