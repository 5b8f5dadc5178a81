package models

// StudentStatus enumerates the lifecycle states of an enrolment.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentSuspended StudentStatus = "suspended"
)

// Student represents an academy member.
type Student struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Email            string        `json:"email,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	CPF              string        `json:"cpf,omitempty"`
	RG               string        `json:"rg,omitempty"`
	BirthDate        Date          `json:"birth_date"`
	Address          string        `json:"address,omitempty"`
	EmergencyContact string        `json:"emergency_contact,omitempty"`
	EmergencyPhone   string        `json:"emergency_phone,omitempty"`
	Belt             Belt          `json:"belt"`
	BeltDegree       int           `json:"belt_degree"`
	Status           StudentStatus `json:"status"`
	EnrollmentDate   Date          `json:"enrollment_date"`
	Notes            string        `json:"notes,omitempty"`
	CreatedAt        Date          `json:"created_at"`
	UpdatedAt        Date          `json:"updated_at"`
}

// StudentProfile groups the records shown on a student's detail page.
type StudentProfile struct {
	Student  *Student  `json:"student"`
	Classes  []Class   `json:"classes"`
	Checkins []Checkin `json:"checkins"`
	Payments []Payment `json:"payments"`
}
