package service

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// TeacherService wraps the /teachers endpoints.
type TeacherService struct {
	api      apiClient
	teachers resource[models.Teacher]
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(api apiClient) *TeacherService {
	return &TeacherService{api: api, teachers: newResource[models.Teacher](api, "teachers")}
}

func (s *TeacherService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Teacher], error) {
	return s.teachers.list(ctx, query)
}

func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	return s.teachers.get(ctx, id)
}

func (s *TeacherService) Create(ctx context.Context, input dto.TeacherInput) (*models.Teacher, error) {
	return s.teachers.create(ctx, input)
}

func (s *TeacherService) Update(ctx context.Context, id string, input dto.TeacherInput) (*models.Teacher, error) {
	return s.teachers.update(ctx, id, input)
}

func (s *TeacherService) Delete(ctx context.Context, id string) error {
	return s.teachers.delete(ctx, id)
}

// Classes lists the classes assigned to a teacher.
func (s *TeacherService) Classes(ctx context.Context, id string) ([]models.Class, error) {
	p, err := s.teachers.path(id, "classes")
	if err != nil {
		return nil, err
	}
	return fetchSlice[models.Class](ctx, s.api, p)
}
