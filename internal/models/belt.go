package models

// Belt is a rank colour as stored by the backend.
type Belt string

const (
	BeltWhite       Belt = "white"
	BeltGrey        Belt = "grey"
	BeltYellow      Belt = "yellow"
	BeltOrange      Belt = "orange"
	BeltGreen       Belt = "green"
	BeltBlue        Belt = "blue"
	BeltPurple      Belt = "purple"
	BeltBrown       Belt = "brown"
	BeltBlack       Belt = "black"
	BeltCoral       Belt = "coral"
	BeltRedAndWhite Belt = "red_white"
	BeltRed         Belt = "red"
)

// PromotionType distinguishes a belt change from a stripe.
type PromotionType string

const (
	PromotionBelt   PromotionType = "belt"
	PromotionDegree PromotionType = "degree"
)

// BeltPromotion is an append-only ledger entry.
type BeltPromotion struct {
	ID             string        `json:"id"`
	StudentID      string        `json:"student_id"`
	Student        *Summary      `json:"student,omitempty"`
	PreviousBelt   Belt          `json:"previous_belt"`
	PreviousDegree int           `json:"previous_degree"`
	NewBelt        Belt          `json:"new_belt"`
	NewDegree      int           `json:"new_degree"`
	PromotionType  PromotionType `json:"promotion_type"`
	PromotedBy     string        `json:"promoted_by"`
	PromotionDate  Date          `json:"promotion_date"`
	Notes          string        `json:"notes,omitempty"`
	CreatedAt      Date          `json:"created_at"`
}

// BeltCount is one row of the belt overview.
type BeltCount struct {
	Belt   Belt `json:"belt"`
	Degree int  `json:"degree"`
	Count  int  `json:"count"`
}

// BeltOverview is the academy-wide distribution of ranks.
type BeltOverview struct {
	TotalStudents    int             `json:"total_students"`
	Distribution     []BeltCount     `json:"distribution"`
	RecentPromotions []BeltPromotion `json:"recent_promotions"`
}

// BeltProgress is a student's current rank and promotion history as the server reports it.
type BeltProgress struct {
	StudentID     string          `json:"student_id"`
	CurrentBelt   Belt            `json:"current_belt"`
	CurrentDegree int             `json:"current_degree"`
	Promotions    []BeltPromotion `json:"promotions"`
}
