package models

// AgeGroup restricts the audience of a class.
type AgeGroup string

const (
	AgeGroupKids   AgeGroup = "kids"
	AgeGroupTeens  AgeGroup = "teens"
	AgeGroupAdults AgeGroup = "adults"
	AgeGroupAll    AgeGroup = "all"
)

// ClassStatus marks whether a class is on the timetable.
type ClassStatus string

const (
	ClassActive   ClassStatus = "active"
	ClassInactive ClassStatus = "inactive"
)

// Class is a recurring training session. DaysOfWeek uses 0 for Sunday.
type Class struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	TeacherID       string      `json:"teacher_id"`
	Teacher         *Summary    `json:"teacher,omitempty"`
	DaysOfWeek      []int       `json:"days_of_week"`
	StartTime       string      `json:"start_time"`
	EndTime         string      `json:"end_time"`
	MaxStudents     int         `json:"max_students"`
	CurrentStudents int         `json:"current_students"`
	BeltRequirement Belt        `json:"belt_requirement,omitempty"`
	AgeGroup        AgeGroup    `json:"age_group,omitempty"`
	Status          ClassStatus `json:"status"`
	CreatedAt       Date        `json:"created_at"`
	UpdatedAt       Date        `json:"updated_at"`
}

// ScheduleEntry is one weekday row of the weekly timetable.
type ScheduleEntry struct {
	DayOfWeek int     `json:"day_of_week"`
	Classes   []Class `json:"classes"`
}
