package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/stats"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// BeltHandler exposes graduation actions and belt reference data.
type BeltHandler struct {
	validate *validator.Validate
}

// NewBeltHandler constructs BeltHandler.
func NewBeltHandler(validate *validator.Validate) *BeltHandler {
	return &BeltHandler{validate: validate}
}

// ProgressView is a student's rank as the server reports it, with display labels.
type ProgressView struct {
	*models.BeltProgress
	Rank      string `json:"rank"`
	Color     string `json:"color"`
	MaxDegree int    `json:"max_degree"`
}

// OverviewView is the belt overview with the ordered table the graduation page renders.
type OverviewView struct {
	*models.BeltOverview
	Table []stats.BeltRow `json:"table"`
}

// Promote godoc
// @Summary Promote a student
// @Tags Belts
// @Accept json
// @Produce json
// @Param payload body dto.PromoteInput true "Promotion"
// @Success 201 {object} response.Envelope
// @Router /belts/promote [post]
func (h *BeltHandler) Promote(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	var input dto.PromoteInput
	if !bindInput(c, h.validate, &input) {
		return
	}
	s := stores.Belts
	promotion, err := s.Promote(c.Request.Context(), input)
	if err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	renderState(c, http.StatusCreated, s.Snapshot(), map[string]interface{}{"entity": promotion})
}

// Overview godoc
// @Summary Belt distribution and recent promotions
// @Tags Belts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /belts/overview [get]
func (h *BeltHandler) Overview(c *gin.Context) {
	overview, ok := h.loadOverview(c)
	if !ok {
		return
	}
	response.OK(c, OverviewView{BeltOverview: overview, Table: stats.BeltTable(overview.Distribution)})
}

// Table godoc
// @Summary Ordered belt table with counts per rank
// @Tags Belts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /belts/table [get]
func (h *BeltHandler) Table(c *gin.Context) {
	overview, ok := h.loadOverview(c)
	if !ok {
		return
	}
	response.OK(c, stats.BeltTable(overview.Distribution))
}

// Catalog godoc
// @Summary Belt reference data
// @Tags Belts
// @Produce json
// @Param group query string false "kids or adults"
// @Success 200 {object} response.Envelope
// @Router /belts/catalog [get]
func (h *BeltHandler) Catalog(c *gin.Context) {
	switch c.Query("group") {
	case "kids":
		response.OK(c, stats.KidsBelts())
	case "adults":
		response.OK(c, stats.AdultBelts())
	default:
		response.OK(c, stats.Belts())
	}
}

// Progress godoc
// @Summary Rank and promotion history of a student
// @Tags Belts
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /belts/progress/{studentId} [get]
func (h *BeltHandler) Progress(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Belts
	if _, err := s.LoadProgress(c.Request.Context(), c.Param("studentId")); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	progress := s.Progress()
	if progress == nil {
		progress = &models.BeltProgress{StudentID: c.Param("studentId"), Promotions: []models.BeltPromotion{}}
	}
	response.OK(c, ProgressView{
		BeltProgress: progress,
		Rank:         stats.RankLabel(progress.CurrentBelt, progress.CurrentDegree),
		Color:        stats.BeltColor(progress.CurrentBelt),
		MaxDegree:    stats.MaxDegree(progress.CurrentBelt),
	})
}

func (h *BeltHandler) loadOverview(c *gin.Context) (*models.BeltOverview, bool) {
	stores, ok := storesFromContext(c)
	if !ok {
		return nil, false
	}
	s := stores.Belts
	if _, err := s.LoadOverview(c.Request.Context()); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return nil, false
	}
	overview := s.Overview()
	if overview == nil {
		overview = &models.BeltOverview{Distribution: []models.BeltCount{}, RecentPromotions: []models.BeltPromotion{}}
	}
	return overview, true
}
