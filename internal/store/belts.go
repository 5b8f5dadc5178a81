package store

import (
	"context"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
)

// BeltAPI is the belt promotion service.
type BeltAPI interface {
	List(ctx context.Context, query models.ListQuery) (*models.ListResult[models.BeltPromotion], error)
	Get(ctx context.Context, id string) (*models.BeltPromotion, error)
	Create(ctx context.Context, input dto.PromotionInput) (*models.BeltPromotion, error)
	Update(ctx context.Context, id string, input dto.PromotionInput) (*models.BeltPromotion, error)
	Delete(ctx context.Context, id string) error
	Promote(ctx context.Context, input dto.PromoteInput) (*models.BeltPromotion, error)
	Overview(ctx context.Context) (*models.BeltOverview, error)
	StudentProgress(ctx context.Context, studentID string) (*models.BeltProgress, error)
}

// BeltStore holds the promotion ledger, the academy overview and one student's progress.
// Belt state is never derived locally from the ledger.
type BeltStore struct {
	*Collection[models.BeltPromotion, dto.PromotionInput]

	api      BeltAPI
	overview *models.BeltOverview
	progress *models.BeltProgress
}

// NewBeltStore constructs a belt store.
func NewBeltStore(api BeltAPI, opts Options) *BeltStore {
	endpoints := Endpoints[models.BeltPromotion, dto.PromotionInput]{
		List:   api.List,
		Get:    api.Get,
		Create: api.Create,
		Update: api.Update,
		Delete: api.Delete,
	}
	messages := withMessages(crudMessages("graduações", "graduação"), map[Op]string{
		OpPromote:  "Erro ao promover aluno",
		OpOverview: "Erro ao carregar visão geral de faixas",
		OpProgress: "Erro ao carregar progresso do aluno",
	})
	return &BeltStore{
		Collection: NewCollection("belts", endpoints, promotionKey, messages, opts),
		api:        api,
	}
}

// Promote records a promotion, prepends it to the ledger and refetches the page.
func (s *BeltStore) Promote(ctx context.Context, input dto.PromoteInput) (*models.BeltPromotion, error) {
	var promotion *models.BeltPromotion
	err := s.run(OpPromote, false, func() error {
		var err error
		promotion, err = s.api.Promote(ctx, input)
		return err
	}, func(st *State[models.BeltPromotion]) {
		st.Items = append([]models.BeltPromotion{*promotion}, st.Items...)
		if s.progress != nil && s.progress.StudentID == promotion.StudentID {
			s.progress = nil
		}
	})
	if err != nil {
		return nil, err
	}
	s.resync(ctx, OpPromote)
	return promotion, nil
}

// LoadOverview loads the academy-wide belt distribution.
func (s *BeltStore) LoadOverview(ctx context.Context) (*models.BeltOverview, error) {
	return load(ctx, s.Collection, OpOverview, s.api.Overview, func(overview *models.BeltOverview) {
		s.overview = overview
	})
}

// LoadProgress loads a student's current rank and history as the server reports it.
func (s *BeltStore) LoadProgress(ctx context.Context, studentID string) (*models.BeltProgress, error) {
	return load(ctx, s.Collection, OpProgress, func(ctx context.Context) (*models.BeltProgress, error) {
		return s.api.StudentProgress(ctx, studentID)
	}, func(progress *models.BeltProgress) {
		s.progress = progress
	})
}

// Overview returns the last loaded overview, if any.
func (s *BeltStore) Overview() *models.BeltOverview {
	var out *models.BeltOverview
	s.read(func() {
		if s.overview != nil {
			copied := *s.overview
			out = &copied
		}
	})
	return out
}

// Progress returns the last loaded student progress, if any.
func (s *BeltStore) Progress() *models.BeltProgress {
	var out *models.BeltProgress
	s.read(func() {
		if s.progress != nil {
			copied := *s.progress
			out = &copied
		}
	})
	return out
}
