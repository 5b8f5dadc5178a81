package models

// Module groups training videos into a curriculum section.
type Module struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Belt        Belt   `json:"belt,omitempty"`
	Order       int    `json:"order"`
	VideoCount  int    `json:"video_count"`
	CreatedAt   Date   `json:"created_at"`
	UpdatedAt   Date   `json:"updated_at"`
}

// Video is a training clip optionally attached to a module or class.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Duration     int    `json:"duration"`
	ModuleID     string `json:"module_id,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	IsFree       bool   `json:"is_free"`
	Order        int    `json:"order"`
	CreatedAt    Date   `json:"created_at"`
	UpdatedAt    Date   `json:"updated_at"`
}
