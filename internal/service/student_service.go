package service

import (
	"context"
	"net/http"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// StudentService wraps the /students endpoints.
type StudentService struct {
	api      apiClient
	students resource[models.Student]
}

// NewStudentService constructs the student service.
func NewStudentService(api apiClient) *StudentService {
	return &StudentService{api: api, students: newResource[models.Student](api, "students")}
}

// List returns a page of students matching the query.
func (s *StudentService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Student], error) {
	return s.students.list(ctx, query)
}

// Get loads one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.students.get(ctx, id)
}

// Create registers a student.
func (s *StudentService) Create(ctx context.Context, input dto.StudentInput) (*models.Student, error) {
	return s.students.create(ctx, input)
}

// Update edits a student.
func (s *StudentService) Update(ctx context.Context, id string, input dto.StudentInput) (*models.Student, error) {
	return s.students.update(ctx, id, input)
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	return s.students.delete(ctx, id)
}

// Classes lists the classes a student is enrolled in.
func (s *StudentService) Classes(ctx context.Context, id string) ([]models.Class, error) {
	p, err := s.students.path(id, "classes")
	if err != nil {
		return nil, err
	}
	return fetchSlice[models.Class](ctx, s.api, p)
}

// Enroll adds the student to a class.
func (s *StudentService) Enroll(ctx context.Context, id, classID string) error {
	if err := ValidateID(classID); err != nil {
		return err
	}
	p, err := s.students.path(id, "classes")
	if err != nil {
		return err
	}
	raw, err := s.api.Do(ctx, http.MethodPost, p, nil, map[string]string{"class_id": classID})
	if err != nil {
		return err
	}
	return acknowledge(raw)
}

// Unenroll removes the student from a class.
func (s *StudentService) Unenroll(ctx context.Context, id, classID string) error {
	p, err := s.students.path(id, "classes", classID)
	if err != nil {
		return err
	}
	raw, err := s.api.Do(ctx, http.MethodDelete, p, nil, nil)
	if err != nil {
		return err
	}
	return acknowledge(raw)
}
