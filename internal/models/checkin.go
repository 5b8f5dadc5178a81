package models

// CheckinMethod records how attendance was captured.
type CheckinMethod string

const (
	CheckinManual CheckinMethod = "manual"
	CheckinQRCode CheckinMethod = "qr_code"
	CheckinApp    CheckinMethod = "app"
)

// Checkin is an append-only attendance record.
type Checkin struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	ClassID     string        `json:"class_id"`
	CheckinTime Date          `json:"checkin_time"`
	Method      CheckinMethod `json:"method"`
	Student     *Summary      `json:"student,omitempty"`
	Class       *Summary      `json:"class,omitempty"`
	CreatedAt   Date          `json:"created_at"`
}
