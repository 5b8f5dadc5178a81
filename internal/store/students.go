package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// StudentAPI is the slice of the student service used by StudentStore.
type StudentAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Student], error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, input dto.StudentInput) (*models.Student, error)
	Update(ctx context.Context, id string, input dto.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	Classes(ctx context.Context, id string) ([]models.Class, error)
	Enroll(ctx context.Context, id, classID string) error
	Unenroll(ctx context.Context, id, classID string) error
}

// CheckinsByStudent lists a student's checkins.
type CheckinsByStudent interface {
	ByStudent(ctx context.Context, studentID string) ([]models.Checkin, error)
}

// PaymentsByStudent lists a student's payments.
type PaymentsByStudent interface {
	ByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
}

// StudentStore holds the student list plus the profile of the selected student.
type StudentStore struct {
	*Collection[models.Student, dto.StudentInput]

	api      StudentAPI
	checkins CheckinsByStudent
	payments PaymentsByStudent

	profile models.StudentProfile
	classes []models.Class
}

// NewStudentStore constructs a student store.
func NewStudentStore(api StudentAPI, checkins CheckinsByStudent, payments PaymentsByStudent, opts Options) *StudentStore {
	endpoints := Endpoints[models.Student, dto.StudentInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("alunos", "aluno"), map[Op]string{
		OpProfile:  "Erro ao carregar perfil do aluno",
		OpClasses:  "Erro ao carregar turmas do aluno",
		OpEnroll:   "Erro ao matricular aluno na turma",
		OpUnenroll: "Erro ao remover aluno da turma",
	})
	return &StudentStore{
		Collection: NewCollection("students", endpoints, studentKey, messages, opts),
		api:        api,
		checkins:   checkins,
		payments:   payments,
	}
}

// LoadProfile selects the student and loads their classes, checkins and payments in
// parallel. When any related read fails all three are left empty.
func (s *StudentStore) LoadProfile(ctx context.Context, id string) (*models.StudentProfile, error) {
	student, err := s.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := models.StudentProfile{Student: student}
	err = s.run(OpProfile, true, func() error {
		var (
			classes  []models.Class
			checkins []models.Checkin
			payments []models.Payment
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			classes, err = s.api.Classes(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			checkins, err = s.checkins.ByStudent(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			payments, err = s.payments.ByStudent(gctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			s.logger.Warn("student relations unavailable, showing empty profile", zap.String("student_id", id), zap.Error(err))
			classes, checkins, payments = nil, nil, nil
		}
		profile.Classes = copyOf(classes)
		profile.Checkins = copyOf(checkins)
		profile.Payments = copyOf(payments)
		return nil
	}, func(*State[models.Student]) {
		s.profile = profile
		s.classes = profile.Classes
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profile returns the last loaded profile.
func (s *StudentStore) Profile() models.StudentProfile {
	var out models.StudentProfile
	s.read(func() {
		out = models.StudentProfile{
			Student:  s.profile.Student,
			Classes:  copyOf(s.profile.Classes),
			Checkins: copyOf(s.profile.Checkins),
			Payments: copyOf(s.profile.Payments),
		}
	})
	return out
}

// LoadClasses loads the classes a student is enrolled in.
func (s *StudentStore) LoadClasses(ctx context.Context, id string) ([]models.Class, error) {
	return load(ctx, s.Collection, OpClasses, func(ctx context.Context) ([]models.Class, error) {
		return s.api.Classes(ctx, id)
	}, func(classes []models.Class) {
		s.classes = copyOf(classes)
		if s.profile.Student != nil && s.profile.Student.ID == id {
			s.profile.Classes = copyOf(classes)
		}
	})
}

// Classes returns the last loaded enrolment list.
func (s *StudentStore) Classes() []models.Class {
	var out []models.Class
	s.read(func() { out = copyOf(s.classes) })
	return out
}

// Enroll adds the student to a class and reloads their classes.
func (s *StudentStore) Enroll(ctx context.Context, id, classID string) error {
	if err := s.run(OpEnroll, false, func() error {
		return s.api.Enroll(ctx, id, classID)
	}, nil); err != nil {
		return err
	}
	_, err := s.LoadClasses(ctx, id)
	return err
}

// Unenroll removes the student from a class and drops it locally.
func (s *StudentStore) Unenroll(ctx context.Context, id, classID string) error {
	return s.run(OpUnenroll, false, func() error {
		return s.api.Unenroll(ctx, id, classID)
	}, func(*State[models.Student]) {
		s.classes = withoutClass(s.classes, classID)
		if s.profile.Student != nil && s.profile.Student.ID == id {
			s.profile.Classes = withoutClass(s.profile.Classes, classID)
		}
	})
}

func withoutClass(classes []models.Class, id string) []models.Class {
	kept := make([]models.Class, 0, len(classes))
	for _, c := range classes {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return kept
}
