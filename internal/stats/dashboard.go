package stats

import (
	"sort"
	"time"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// AdminInput is the already fetched state of each store the admin dashboard reads.
type AdminInput struct {
	Students      []models.Student
	StudentsTotal int
	Teachers      []models.Teacher
	TeachersTotal int
	Classes       []models.Class
	Payments      []models.Payment
	Expenses      []models.Expense
	TodayCheckins []models.Checkin
}

// AdminDashboard is the home page of administrators.
type AdminDashboard struct {
	TotalStudents   int              `json:"total_students"`
	ActiveStudents  int              `json:"active_students"`
	TotalTeachers   int              `json:"total_teachers"`
	ActiveClasses   int              `json:"active_classes"`
	TodayCheckins   int              `json:"today_checkins"`
	TodayClasses    []models.Class   `json:"today_classes"`
	InProgress      []string         `json:"in_progress"`
	Financial       FinancialSummary `json:"financial"`
	OverduePayments []OverdueEntry   `json:"overdue_payments"`
	Occupancy       []Occupancy      `json:"occupancy"`
	RecentStudents  []models.Student `json:"recent_students"`
	Belts           []BeltRow        `json:"belts"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

const recentStudentsLimit = 5

// Admin combines the stores' state into the admin dashboard. Totals fall back to the
// loaded list length when the server did not report one.
func Admin(in AdminInput, now time.Time) AdminDashboard {
	dash := AdminDashboard{
		TotalStudents:   orLen(in.StudentsTotal, len(in.Students)),
		TotalTeachers:   orLen(in.TeachersTotal, len(in.Teachers)),
		TodayCheckins:   len(in.TodayCheckins),
		TodayClasses:    TodayClasses(in.Classes, now),
		InProgress:      []string{},
		Financial:       Financial(in.Payments, in.Expenses, now),
		OverduePayments: Overdue(in.Payments, now),
		Occupancy:       ClassOccupancy(in.Classes),
		RecentStudents:  recentStudents(in.Students, recentStudentsLimit),
		Belts:           BeltTable(DistributionFromStudents(in.Students)),
		GeneratedAt:     now,
	}
	for _, s := range in.Students {
		if s.Status == models.StudentActive {
			dash.ActiveStudents++
		}
	}
	for _, c := range in.Classes {
		if isActive(c) {
			dash.ActiveClasses++
		}
	}
	for _, c := range dash.TodayClasses {
		if InProgress(c, now) {
			dash.InProgress = append(dash.InProgress, c.ID)
		}
	}
	return dash
}

func recentStudents(students []models.Student, limit int) []models.Student {
	sorted := append([]models.Student(nil), students...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnrollmentDate.After(sorted[j].EnrollmentDate.Time)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []models.Student{}
	}
	return sorted
}

func orLen(total, n int) int {
	if total > 0 {
		return total
	}
	return n
}
