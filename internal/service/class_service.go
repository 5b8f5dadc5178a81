package service

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// ClassService wraps the /classes endpoints.
type ClassService struct {
	api     apiClient
	classes resource[models.Class]
}

// NewClassService constructs the class service.
func NewClassService(api apiClient) *ClassService {
	return &ClassService{api: api, classes: newResource[models.Class](api, "classes")}
}

func (s *ClassService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Class], error) {
	return s.classes.list(ctx, query)
}

func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	return s.classes.get(ctx, id)
}

func (s *ClassService) Create(ctx context.Context, input dto.ClassInput) (*models.Class, error) {
	return s.classes.create(ctx, input)
}

func (s *ClassService) Update(ctx context.Context, id string, input dto.ClassInput) (*models.Class, error) {
	return s.classes.update(ctx, id, input)
}

func (s *ClassService) Delete(ctx context.Context, id string) error {
	return s.classes.delete(ctx, id)
}

// Students lists the roster of a class.
func (s *ClassService) Students(ctx context.Context, id string) ([]models.Student, error) {
	p, err := s.classes.path(id, "students")
	if err != nil {
		return nil, err
	}
	return fetchSlice[models.Student](ctx, s.api, p)
}

// Checkins lists attendance recorded for a class.
func (s *ClassService) Checkins(ctx context.Context, id string) ([]models.Checkin, error) {
	p, err := s.classes.path(id, "checkins")
	if err != nil {
		return nil, err
	}
	return fetchSlice[models.Checkin](ctx, s.api, p)
}

// Schedule returns the weekly timetable.
func (s *ClassService) Schedule(ctx context.Context) ([]models.Class, error) {
	return s.classes.slice(ctx, "schedule")
}
