package service

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// CheckinService wraps the /checkins endpoints. Checkins are append-only.
type CheckinService struct {
	checkins resource[models.Checkin]
}

// NewCheckinService constructs the checkin service.
func NewCheckinService(api apiClient) *CheckinService {
	return &CheckinService{checkins: newResource[models.Checkin](api, "checkins")}
}

func (s *CheckinService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.Checkin], error) {
	return s.checkins.list(ctx, query)
}

func (s *CheckinService) Create(ctx context.Context, input dto.CheckinInput) (*models.Checkin, error) {
	return s.checkins.create(ctx, input)
}

func (s *CheckinService) Delete(ctx context.Context, id string) error {
	return s.checkins.delete(ctx, id)
}

// Today lists the checkins registered today.
func (s *CheckinService) Today(ctx context.Context) ([]models.Checkin, error) {
	return s.checkins.slice(ctx, "today")
}

// ByStudent lists a student's attendance history.
func (s *CheckinService) ByStudent(ctx context.Context, studentID string) ([]models.Checkin, error) {
	return s.checkins.slice(ctx, "student", studentID)
}

// ByClass lists attendance for one class.
func (s *CheckinService) ByClass(ctx context.Context, classID string) ([]models.Checkin, error) {
	return s.checkins.slice(ctx, "class", classID)
}
