package dto

import "github.com/okami-ct/okami-dashboard/internal/models"

// StudentInput is the create/edit form payload for students.
type StudentInput struct {
	Name             string               `json:"name" validate:"required,min=3"`
	Email            string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone            string               `json:"phone,omitempty" validate:"omitempty,min=10"`
	CPF              string               `json:"cpf,omitempty" validate:"omitempty,len=11,numeric"`
	RG               string               `json:"rg,omitempty"`
	BirthDate        string               `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address          string               `json:"address,omitempty"`
	EmergencyContact string               `json:"emergency_contact,omitempty"`
	EmergencyPhone   string               `json:"emergency_phone,omitempty"`
	Belt             models.Belt          `json:"belt" validate:"required,belt"`
	BeltDegree       int                  `json:"belt_degree" validate:"gte=0,lte=10"`
	Status           models.StudentStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	EnrollmentDate   string               `json:"enrollment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes            string               `json:"notes,omitempty"`
}

// TeacherInput is the create/edit form payload for teachers.
type TeacherInput struct {
	Name        string               `json:"name" validate:"required,min=3"`
	Email       string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string               `json:"phone,omitempty"`
	CPF         string               `json:"cpf,omitempty" validate:"omitempty,len=11,numeric"`
	Belt        models.Belt          `json:"belt" validate:"required,belt"`
	BeltDegree  int                  `json:"belt_degree" validate:"gte=0,lte=10"`
	Specialties []string             `json:"specialties,omitempty" validate:"dive,required"`
	HourlyRate  float64              `json:"hourly_rate,omitempty" validate:"gte=0"`
	HireDate    string               `json:"hire_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      models.StudentStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
	Notes       string               `json:"notes,omitempty"`
}

// ClassInput is the create/edit form payload for classes.
type ClassInput struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description,omitempty"`
	TeacherID       string             `json:"teacher_id" validate:"required"`
	DaysOfWeek      []int              `json:"days_of_week" validate:"required,min=1,unique,dive,gte=0,lte=6"`
	StartTime       string             `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string             `json:"end_time" validate:"required,datetime=15:04"`
	MaxStudents     int                `json:"max_students" validate:"gte=0"`
	BeltRequirement models.Belt        `json:"belt_requirement,omitempty" validate:"omitempty,belt"`
	AgeGroup        models.AgeGroup    `json:"age_group,omitempty" validate:"omitempty,oneof=kids teens adults all"`
	Status          models.ClassStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// CheckinInput records attendance.
type CheckinInput struct {
	StudentID   string               `json:"student_id" validate:"required"`
	ClassID     string               `json:"class_id" validate:"required"`
	CheckinTime string               `json:"checkin_time,omitempty"`
	Method      models.CheckinMethod `json:"method" validate:"required,oneof=manual qr_code app"`
}

// PaymentInput is the create/edit form payload for payments.
type PaymentInput struct {
	StudentID      string               `json:"student_id" validate:"required"`
	Amount         float64              `json:"amount" validate:"gt=0"`
	Discount       float64              `json:"discount" validate:"gte=0"`
	LateFee        float64              `json:"late_fee" validate:"gte=0"`
	DueDate        string               `json:"due_date" validate:"required,datetime=2006-01-02"`
	PaymentDate    string               `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReferenceMonth string               `json:"reference_month" validate:"required,datetime=2006-01"`
	Status         models.PaymentStatus `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue cancelled"`
	PaymentMethod  models.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,payment_method"`
	Notes          string               `json:"notes,omitempty"`
}

// MarkAsPaidInput asks the server to settle a payment.
type MarkAsPaidInput struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,payment_method"`
	PaymentDate   string               `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateMonthlyInput requests tuition generation for one reference month.
type GenerateMonthlyInput struct {
	Month int `json:"month" validate:"required,gte=1,lte=12"`
	Year  int `json:"year" validate:"required,gte=2000,lte=2100"`
}

// ExpenseInput is the create/edit form payload for expenses.
type ExpenseInput struct {
	Title         string               `json:"title" validate:"required"`
	Description   string               `json:"description,omitempty"`
	Amount        float64              `json:"amount" validate:"gt=0"`
	Category      string               `json:"category" validate:"required"`
	ExpenseDate   string               `json:"expense_date" validate:"required,datetime=2006-01-02"`
	DueDate       string               `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentDate   string               `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod models.PaymentMethod `json:"payment_method,omitempty" validate:"omitempty,payment_method"`
	Status        models.ExpenseStatus `json:"status,omitempty" validate:"omitempty,oneof=pending paid cancelled"`
	Supplier      string               `json:"supplier,omitempty"`
	Notes         string               `json:"notes,omitempty"`
}

// PromotionInput records a belt ledger entry directly.
type PromotionInput struct {
	StudentID      string               `json:"student_id" validate:"required"`
	PreviousBelt   models.Belt          `json:"previous_belt" validate:"required,belt"`
	PreviousDegree int                  `json:"previous_degree" validate:"gte=0,lte=10"`
	NewBelt        models.Belt          `json:"new_belt" validate:"required,belt"`
	NewDegree      int                  `json:"new_degree" validate:"gte=0,lte=10"`
	PromotionType  models.PromotionType `json:"promotion_type" validate:"required,oneof=belt degree"`
	PromotedBy     string               `json:"promoted_by,omitempty"`
	PromotionDate  string               `json:"promotion_date" validate:"required,datetime=2006-01-02"`
	Notes          string               `json:"notes,omitempty"`
}

// PromoteInput asks the server to promote a student and update their rank.
type PromoteInput struct {
	StudentID     string               `json:"student_id" validate:"required"`
	NewBelt       models.Belt          `json:"new_belt" validate:"required,belt"`
	NewDegree     int                  `json:"new_degree" validate:"gte=0,lte=10"`
	PromotionType models.PromotionType `json:"promotion_type" validate:"required,oneof=belt degree"`
	PromotionDate string               `json:"promotion_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string               `json:"notes,omitempty"`
}

// ModuleInput is the create/edit form payload for curriculum modules.
type ModuleInput struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description,omitempty"`
	Belt        models.Belt `json:"belt,omitempty" validate:"omitempty,belt"`
	Order       int         `json:"order" validate:"gte=0"`
}

// VideoInput is the create/edit form payload for video metadata.
type VideoInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url" validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Duration     int    `json:"duration" validate:"gte=0"`
	ModuleID     string `json:"module_id,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	IsFree       bool   `json:"is_free"`
	Order        int    `json:"order" validate:"gte=0"`
}

// UploadVideoInput carries the metadata fields sent alongside an uploaded file.
type UploadVideoInput struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	ModuleID    string `form:"module_id"`
	ClassID     string `form:"class_id"`
	IsFree      bool   `form:"is_free"`
}

// Fields renders the upload metadata as multipart form fields.
func (in UploadVideoInput) Fields() map[string]string {
	fields := map[string]string{"title": in.Title}
	if in.Description != "" {
		fields["description"] = in.Description
	}
	if in.ModuleID != "" {
		fields["module_id"] = in.ModuleID
	}
	if in.ClassID != "" {
		fields["class_id"] = in.ClassID
	}
	if in.IsFree {
		fields["is_free"] = "true"
	} else {
		fields["is_free"] = "false"
	}
	return fields
}
