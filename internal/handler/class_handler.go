package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/stats"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// ClassHandler exposes class roster, attendance and timetable views.
type ClassHandler struct {
	now func() time.Time
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler() *ClassHandler {
	return &ClassHandler{now: time.Now}
}

// ScheduleView is the timetable page: the week grid plus today's classes.
type ScheduleView struct {
	Week       []models.ScheduleEntry `json:"week"`
	Today      []models.Class         `json:"today"`
	Upcoming   []models.Class         `json:"upcoming"`
	InProgress []string               `json:"in_progress"`
	Occupancy  []stats.Occupancy      `json:"occupancy"`
}

// Students godoc
// @Summary Students enrolled in a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Students(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Classes
	if _, err := s.LoadStudents(c.Request.Context(), c.Param("id")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Roster())
		return
	}
	response.OK(c, s.Roster())
}

// Checkins godoc
// @Summary Attendance of a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/checkins [get]
func (h *ClassHandler) Checkins(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Classes
	if _, err := s.LoadCheckins(c.Request.Context(), c.Param("id")); !settled(err) {
		staleFailure(c, err, s.Snapshot().Error, s.Checkins())
		return
	}
	response.OK(c, s.Checkins())
}

// Schedule godoc
// @Summary Weekly timetable
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes/schedule [get]
func (h *ClassHandler) Schedule(c *gin.Context) {
	stores, ok := storesFromContext(c)
	if !ok {
		return
	}
	s := stores.Classes
	if _, err := s.LoadSchedule(c.Request.Context()); !settled(err) {
		storeFailure(c, err, s.Snapshot().Error)
		return
	}

	now := h.now()
	classes := s.Schedule()
	view := ScheduleView{
		Week:       stats.WeeklySchedule(classes),
		Today:      stats.TodayClasses(classes, now),
		Upcoming:   stats.UpcomingClasses(classes, now),
		InProgress: []string{},
		Occupancy:  stats.ClassOccupancy(classes),
	}
	for _, class := range view.Today {
		if stats.InProgress(class, now) {
			view.InProgress = append(view.InProgress, class.ID)
		}
	}
	response.OK(c, view)
}
