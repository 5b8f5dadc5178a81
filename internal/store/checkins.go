package store

import (
	"context"
	"time"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// CheckinAPI is the slice of the checkin service used by CheckinStore.
type CheckinAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Checkin], error)
	Create(ctx context.Context, input dto.CheckinInput) (*models.Checkin, error)
	Delete(ctx context.Context, id string) error
	Today(ctx context.Context) ([]models.Checkin, error)
	ByStudent(ctx context.Context, studentID string) ([]models.Checkin, error)
	ByClass(ctx context.Context, classID string) ([]models.Checkin, error)
}

// CheckinStore holds attendance records. Checkins cannot be fetched singly or edited.
type CheckinStore struct {
	*Collection[models.Checkin, dto.CheckinInput]

	api       CheckinAPI
	today     []models.Checkin
	byStudent []models.Checkin
	byClass   []models.Checkin
	now       func() time.Time
}

// NewCheckinStore constructs a checkin store.
func NewCheckinStore(api CheckinAPI, opts Options) *CheckinStore {
	endpoints := Endpoints[models.Checkin, dto.CheckinInput]{
		List:   api.List,
		Create: api.Create,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("check-ins", "check-in"), map[Op]string{
		OpCreate:    "Erro ao registrar check-in",
		OpToday:     "Erro ao carregar check-ins de hoje",
		OpByStudent: "Erro ao carregar check-ins do aluno",
		OpByClass:   "Erro ao carregar check-ins da turma",
	})
	return &CheckinStore{
		Collection: NewCollection("checkins", endpoints, checkinKey, messages, opts),
		api:        api,
		now:        time.Now,
	}
}

// Create records a checkin. A checkin dated today is also prepended to today's list.
func (s *CheckinStore) Create(ctx context.Context, input dto.CheckinInput) (*models.Checkin, error) {
	checkin, err := s.Collection.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if !sameDay(checkin.CheckinTime.Time, s.now()) {
		return checkin, nil
	}
	s.mutate(func(*State[models.Checkin]) {
		s.today = append([]models.Checkin{*checkin}, s.today...)
	})
	return checkin, nil
}

// Delete removes a checkin from every list that holds it.
func (s *CheckinStore) Delete(ctx context.Context, id string) error {
	if err := s.Collection.Delete(ctx, id); err != nil {
		return err
	}
	s.mutate(func(*State[models.Checkin]) {
		s.today = withoutCheckin(s.today, id)
		s.byStudent = withoutCheckin(s.byStudent, id)
		s.byClass = withoutCheckin(s.byClass, id)
	})
	return nil
}

// LoadToday loads the checkins made today.
func (s *CheckinStore) LoadToday(ctx context.Context) ([]models.Checkin, error) {
	return load(ctx, s.Collection, OpToday, s.api.Today, func(checkins []models.Checkin) {
		s.today = copyOf(checkins)
	})
}

// LoadByStudent loads a student's attendance history.
func (s *CheckinStore) LoadByStudent(ctx context.Context, studentID string) ([]models.Checkin, error) {
	return load(ctx, s.Collection, OpByStudent, func(ctx context.Context) ([]models.Checkin, error) {
		return s.api.ByStudent(ctx, studentID)
	}, func(checkins []models.Checkin) {
		s.byStudent = copyOf(checkins)
	})
}

// LoadByClass loads a class's attendance history.
func (s *CheckinStore) LoadByClass(ctx context.Context, classID string) ([]models.Checkin, error) {
	return load(ctx, s.Collection, OpByClass, func(ctx context.Context) ([]models.Checkin, error) {
		return s.api.ByClass(ctx, classID)
	}, func(checkins []models.Checkin) {
		s.byClass = copyOf(checkins)
	})
}

// Today returns the last loaded list of today's checkins.
func (s *CheckinStore) Today() []models.Checkin {
	var out []models.Checkin
	s.read(func() { out = copyOf(s.today) })
	return out
}

// ByStudent returns the last loaded student history.
func (s *CheckinStore) ByStudent() []models.Checkin {
	var out []models.Checkin
	s.read(func() { out = copyOf(s.byStudent) })
	return out
}

// ByClass returns the last loaded class history.
func (s *CheckinStore) ByClass() []models.Checkin {
	var out []models.Checkin
	s.read(func() { out = copyOf(s.byClass) })
	return out
}

// sameDay reports whether t falls on now's calendar day. A zero t is the backend's
// default of the current time.
func sameDay(t, now time.Time) bool {
	if t.IsZero() {
		return true
	}
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func withoutCheckin(checkins []models.Checkin, id string) []models.Checkin {
	kept := make([]models.Checkin, 0, len(checkins))
	for _, c := range checkins {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return kept
}
