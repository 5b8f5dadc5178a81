package stats

import (
	"math"
	"sort"
	"time"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// Weekdays are the Portuguese day names indexed like Class.DaysOfWeek.
var Weekdays = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// FillPercentage is current/max as a rounded percentage, or 0 when max is not positive.
func FillPercentage(current, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(current) * 100 / float64(max)))
}

// Occupancy is the fill level of one class.
type Occupancy struct {
	ClassID    string `json:"class_id"`
	Name       string `json:"name"`
	Current    int    `json:"current"`
	Max        int    `json:"max"`
	Percentage int    `json:"percentage"`
	Full       bool   `json:"full"`
}

// ClassOccupancy computes the fill level of every class, fullest first.
func ClassOccupancy(classes []models.Class) []Occupancy {
	out := make([]Occupancy, 0, len(classes))
	for _, c := range classes {
		out = append(out, Occupancy{
			ClassID:    c.ID,
			Name:       c.Name,
			Current:    c.CurrentStudents,
			Max:        c.MaxStudents,
			Percentage: FillPercentage(c.CurrentStudents, c.MaxStudents),
			Full:       c.MaxStudents > 0 && c.CurrentStudents >= c.MaxStudents,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

// RunsOn reports whether the class meets on weekday (0 is Sunday).
func RunsOn(c models.Class, weekday int) bool {
	for _, d := range c.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// IsUpcoming reports whether any of the class weekdays is on or after weekday.
// There is no rollover into the next week.
func IsUpcoming(c models.Class, weekday int) bool {
	for _, d := range c.DaysOfWeek {
		if d >= weekday {
			return true
		}
	}
	return false
}

// UpcomingClasses keeps the active classes still to happen this week.
func UpcomingClasses(classes []models.Class, now time.Time) []models.Class {
	weekday := int(now.Weekday())
	out := make([]models.Class, 0)
	for _, c := range classes {
		if isActive(c) && IsUpcoming(c, weekday) {
			out = append(out, c)
		}
	}
	return out
}

// TodayClasses keeps the active classes meeting on now's weekday, ordered by start time.
func TodayClasses(classes []models.Class, now time.Time) []models.Class {
	weekday := int(now.Weekday())
	out := make([]models.Class, 0)
	for _, c := range classes {
		if isActive(c) && RunsOn(c, weekday) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// InProgress reports whether the class meets today and now is within [start, end).
func InProgress(c models.Class, now time.Time) bool {
	if !RunsOn(c, int(now.Weekday())) {
		return false
	}
	start, ok := minutes(c.StartTime)
	if !ok {
		return false
	}
	end, ok := minutes(c.EndTime)
	if !ok {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	return current >= start && current < end
}

// WeeklySchedule groups classes by weekday, Sunday first, each day ordered by start time.
func WeeklySchedule(classes []models.Class) []models.ScheduleEntry {
	days := make([]models.ScheduleEntry, 7)
	for d := range days {
		days[d] = models.ScheduleEntry{DayOfWeek: d, Classes: []models.Class{}}
	}
	for _, c := range classes {
		for _, d := range c.DaysOfWeek {
			if d < 0 || d > 6 {
				continue
			}
			days[d].Classes = append(days[d].Classes, c)
		}
	}
	for d := range days {
		sort.SliceStable(days[d].Classes, func(i, j int) bool {
			return days[d].Classes[i].StartTime < days[d].Classes[j].StartTime
		})
	}
	return days
}

func isActive(c models.Class) bool {
	return c.Status == "" || c.Status == models.ClassActive
}

func minutes(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
		if err != nil {
			return 0, false
		}
	}
	return t.Hour()*60 + t.Minute(), true
}
