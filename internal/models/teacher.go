package models

// Teacher represents an instructor.
type Teacher struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	CPF         string        `json:"cpf,omitempty"`
	Belt        Belt          `json:"belt"`
	BeltDegree  int           `json:"belt_degree"`
	Specialties []string      `json:"specialties"`
	HourlyRate  Money         `json:"hourly_rate"`
	HireDate    Date          `json:"hire_date"`
	Status      StudentStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   Date          `json:"created_at"`
	UpdatedAt   Date          `json:"updated_at"`
}
