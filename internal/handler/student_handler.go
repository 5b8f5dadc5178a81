package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// StudentHandler exposes the student detail page actions beyond the list and form.
type StudentHandler struct{}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler() *StudentHandler {
	return &StudentHandler{}
}

// Profile godoc
// @Summary Student profile with classes, checkins and payments
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/profile [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Students
	if _, err := s.LoadProfile(c.Request.Context(), c.Param("id")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Profile())
		return
	}
	response.OK(c, s.Profile())
}

// Classes godoc
// @Summary Classes a student is enrolled in
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/classes [get]
func (h *StudentHandler) Classes(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Students
	if _, err := s.LoadClasses(c.Request.Context(), c.Param("id")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Classes())
		return
	}
	response.OK(c, s.Classes())
}

// Enroll godoc
// @Summary Enroll a student in a class
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/classes/{classId} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Students
	if err := s.Enroll(c.Request.Context(), c.Param("id"), c.Param("classId")); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	response.OK(c, s.Classes())
}

// Unenroll godoc
// @Summary Remove a student from a class
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/classes/{classId} [delete]
func (h *StudentHandler) Unenroll(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Students
	if err := s.Unenroll(c.Request.Context(), c.Param("id"), c.Param("classId")); err != nil {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}
	response.OK(c, s.Classes())
}
