package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// CheckinHandler exposes the attendance lists beyond the paginated history.
type CheckinHandler struct{}

// NewCheckinHandler constructs CheckinHandler.
func NewCheckinHandler() *CheckinHandler {
	return &CheckinHandler{}
}

// Today godoc
// @Summary Today's checkins
// @Tags Checkins
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /checkins/today [get]
func (h *CheckinHandler) Today(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Checkins
	if _, err := s.LoadToday(c.Request.Context()); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Today())
		return
	}
	response.OK(c, s.Today())
}

// ByStudent godoc
// @Summary Checkins of a student
// @Tags Checkins
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /checkins/student/{studentId} [get]
func (h *CheckinHandler) ByStudent(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Checkins
	if _, err := s.LoadByStudent(c.Request.Context(), c.Param("studentId")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.ByStudent())
		return
	}
	response.OK(c, s.ByStudent())
}

// ByClass godoc
// @Summary Checkins of a class
// @Tags Checkins
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /checkins/class/{classId} [get]
func (h *CheckinHandler) ByClass(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Checkins
	if _, err := s.LoadByClass(c.Request.Context(), c.Param("classId")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.ByClass())
		return
	}
	response.OK(c, s.ByClass())
}
