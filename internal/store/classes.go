package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// ClassAPI is the slice of the class service used by ClassStore.
type ClassAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Class], error)
	Get(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, input dto.ClassInput) (*models.Class, error)
	Update(ctx context.Context, id string, input dto.ClassInput) (*models.Class, error)
	Delete(ctx context.Context, id string) error
	Students(ctx context.Context, id string) ([]models.Student, error)
	Checkins(ctx context.Context, id string) ([]models.Checkin, error)
	Schedule(ctx context.Context) ([]models.Class, error)
}

// ClassStore holds classes, the roster and checkins of the selected class and the weekly schedule.
type ClassStore struct {
	*Collection[models.Class, dto.ClassInput]

	api      ClassAPI
	roster   []models.Student
	checkins []models.Checkin
	schedule []models.Class
}

// NewClassStore constructs a class store.
func NewClassStore(api ClassAPI, opts Options) *ClassStore {
	endpoints := Endpoints[models.Class, dto.ClassInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("turmas", "turma"), map[Op]string{
		OpStudents: "Erro ao carregar alunos da turma",
		OpCheckins: "Erro ao carregar check-ins da turma",
		OpSchedule: "Erro ao carregar horários",
	})
	return &ClassStore{
		Collection: NewCollection("classes", endpoints, classKey, messages, opts),
		api:        api,
	}
}

// LoadStudents loads the roster of a class.
func (s *ClassStore) LoadStudents(ctx context.Context, id string) ([]models.Student, error) {
	return load(ctx, s.Collection, OpStudents, func(ctx context.Context) ([]models.Student, error) {
		return s.api.Students(ctx, id)
	}, func(students []models.Student) {
		s.roster = copyOf(students)
	})
}

// LoadCheckins loads the attendance of a class.
func (s *ClassStore) LoadCheckins(ctx context.Context, id string) ([]models.Checkin, error) {
	return load(ctx, s.Collection, OpCheckins, func(ctx context.Context) ([]models.Checkin, error) {
		return s.api.Checkins(ctx, id)
	}, func(checkins []models.Checkin) {
		s.checkins = copyOf(checkins)
	})
}

// LoadSchedule loads every class on the weekly timetable.
func (s *ClassStore) LoadSchedule(ctx context.Context) ([]models.Class, error) {
	return load(ctx, s.Collection, OpSchedule, s.api.Schedule, func(classes []models.Class) {
		s.schedule = copyOf(classes)
	})
}

// Roster returns the last loaded roster.
func (s *ClassStore) Roster() []models.Student {
	var out []models.Student
	s.read(func() { out = copyOf(s.roster) })
	return out
}

// Checkins returns the last loaded class attendance.
func (s *ClassStore) Checkins() []models.Checkin {
	var out []models.Checkin
	s.read(func() { out = copyOf(s.checkins) })
	return out
}

// Schedule returns the last loaded timetable.
func (s *ClassStore) Schedule() []models.Class {
	var out []models.Class
	s.read(func() { out = copyOf(s.schedule) })
	return out
}
