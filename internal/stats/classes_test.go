package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

func TestFillPercentage(t *testing.T) {
	assert.Equal(t, 0, FillPercentage(5, 0))
	assert.Equal(t, 0, FillPercentage(0, -3))
	assert.Equal(t, 50, FillPercentage(10, 20))
	assert.Equal(t, 33, FillPercentage(1, 3))
	assert.Equal(t, 67, FillPercentage(2, 3))
	assert.Equal(t, 120, FillPercentage(24, 20))
}

func TestIsUpcomingHasNoRollover(t *testing.T) {
	class := models.Class{DaysOfWeek: []int{1, 3}}
	assert.True(t, IsUpcoming(class, 0))
	assert.True(t, IsUpcoming(class, 3))
	assert.False(t, IsUpcoming(class, 4))
	assert.False(t, IsUpcoming(models.Class{}, 0))
}

func TestTodayClassesAndInProgress(t *testing.T) {
	classes := []models.Class{
		{ID: "late", DaysOfWeek: []int{4}, StartTime: "20:00", EndTime: "21:30", Status: models.ClassActive},
		{ID: "now", DaysOfWeek: []int{2, 4}, StartTime: "19:00", EndTime: "20:00", Status: models.ClassActive},
		{ID: "other-day", DaysOfWeek: []int{1}, StartTime: "07:00", EndTime: "08:00", Status: models.ClassActive},
		{ID: "inactive", DaysOfWeek: []int{4}, StartTime: "06:00", EndTime: "07:00", Status: models.ClassInactive},
	}

	today := TodayClasses(classes, now)
	require.Len(t, today, 2)
	assert.Equal(t, "now", today[0].ID)
	assert.Equal(t, "late", today[1].ID)

	assert.True(t, InProgress(today[0], now))
	assert.False(t, InProgress(today[1], now))
	assert.False(t, InProgress(classes[2], now))
	assert.False(t, InProgress(models.Class{DaysOfWeek: []int{4}, StartTime: "bad", EndTime: "20:00"}, now))

	ending := time.Date(2024, time.February, 15, 20, 0, 0, 0, time.UTC)
	assert.False(t, InProgress(today[0], ending))
	assert.True(t, InProgress(today[1], ending.Add(30*time.Minute)))

	upcoming := UpcomingClasses(classes, now)
	assert.Len(t, upcoming, 2)
}

func TestClassOccupancy(t *testing.T) {
	occupancy := ClassOccupancy([]models.Class{
		{ID: "a", CurrentStudents: 5, MaxStudents: 20},
		{ID: "b", CurrentStudents: 20, MaxStudents: 20},
		{ID: "c", CurrentStudents: 3, MaxStudents: 0},
	})
	require.Len(t, occupancy, 3)
	assert.Equal(t, "b", occupancy[0].ClassID)
	assert.True(t, occupancy[0].Full)
	assert.Equal(t, 25, occupancy[1].Percentage)
	assert.Equal(t, 0, occupancy[2].Percentage)
	assert.False(t, occupancy[2].Full)
}

func TestWeeklySchedule(t *testing.T) {
	schedule := WeeklySchedule([]models.Class{
		{ID: "b", DaysOfWeek: []int{1, 3}, StartTime: "19:00"},
		{ID: "a", DaysOfWeek: []int{1}, StartTime: "07:00"},
		{ID: "x", DaysOfWeek: []int{9}},
	})
	require.Len(t, schedule, 7)
	require.Len(t, schedule[1].Classes, 2)
	assert.Equal(t, "a", schedule[1].Classes[0].ID)
	assert.Len(t, schedule[3].Classes, 1)
	assert.NotNil(t, schedule[0].Classes)
	assert.Empty(t, schedule[0].Classes)
}
