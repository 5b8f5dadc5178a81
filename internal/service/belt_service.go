package service

import (
	"context"
	"net/http"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
)

// BeltService wraps the belt promotion ledger endpoints.
type BeltService struct {
	api        apiClient
	promotions resource[models.BeltPromotion]
}

// NewBeltService constructs the belt service.
func NewBeltService(api apiClient) *BeltService {
	return &BeltService{api: api, promotions: newResource[models.BeltPromotion](api, "belts/promotions")}
}

func (s *BeltService) List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.BeltPromotion], error) {
	return s.promotions.list(ctx, query)
}

func (s *BeltService) Get(ctx context.Context, id string) (*models.BeltPromotion, error) {
	return s.promotions.get(ctx, id)
}

func (s *BeltService) Create(ctx context.Context, input dto.PromotionInput) (*models.BeltPromotion, error) {
	return s.promotions.create(ctx, input)
}

func (s *BeltService) Update(ctx context.Context, id string, input dto.PromotionInput) (*models.BeltPromotion, error) {
	return s.promotions.update(ctx, id, input)
}

func (s *BeltService) Delete(ctx context.Context, id string) error {
	return s.promotions.delete(ctx, id)
}

// Promote asks the server to promote a student; the server updates the student's rank.
func (s *BeltService) Promote(ctx context.Context, input dto.PromoteInput) (*models.BeltPromotion, error) {
	raw, err := s.api.Do(ctx, http.MethodPost, "belts/promote", nil, input)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.BeltPromotion](raw)
}

// Overview returns the academy-wide rank distribution.
func (s *BeltService) Overview(ctx context.Context) (*models.BeltOverview, error) {
	raw, err := s.api.Do(ctx, http.MethodGet, "belts/overview", nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.BeltOverview](raw)
}

// StudentProgress returns one student's rank history.
func (s *BeltService) StudentProgress(ctx context.Context, studentID string) (*models.BeltProgress, error) {
	p, err := joinPath("students", studentID, "belt-progress")
	if err != nil {
		return nil, err
	}
	raw, err := s.api.Do(ctx, http.MethodGet, p, nil, nil)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeEntity[models.BeltProgress](raw)
}
