package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// TeacherHandler exposes teacher actions beyond the list and form.
type TeacherHandler struct{}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler() *TeacherHandler {
	return &TeacherHandler{}
}

// Classes godoc
// @Summary Classes taught by a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/classes [get]
func (h *TeacherHandler) Classes(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Teachers
	if _, err := s.LoadClasses(c.Request.Context(), c.Param("id")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Classes())
		return
	}
	response.OK(c, s.Classes())
}
