package model

import (
	"net/url"
	"time"

	"gorm.io/gorm"
)

const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
	StatusStopped = "stopped"
)

// Scan represents one crawl run over a site and its processing status.
type Scan struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	SeedURL      string         `gorm:"type:text;not null" json:"seed_url"`
	Depth        int            `gorm:"not null;default:1" json:"depth"`
	Status       string         `gorm:"type:enum('queued','running','done','error','stopped');default:'queued';not null" json:"status"`
	PagesVisited int            `json:"pages_visited"`
	BrokenCount  int            `json:"broken_count"`
	Duration     int64          `json:"duration"` // nanoseconds
	Findings     []Finding      `gorm:"foreignKey:ScanID;constraint:OnDelete:CASCADE" json:"findings,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for Scan.
func (Scan) TableName() string {
	return "scans"
}

// Seed returns the parsed seed URL.
func (s *Scan) Seed() *url.URL {
	u, _ := url.Parse(s.SeedURL)
	return u
}

// ScanDTO is the data transfer object for Scan.
type ScanDTO struct {
	ID           uint          `json:"id"`
	UserID       uint          `json:"user_id"`
	SeedURL      string        `json:"seed_url"`
	Depth        int           `json:"depth"`
	Status       string        `json:"status"`
	PagesVisited int           `json:"pages_visited"`
	BrokenCount  int           `json:"broken_count"`
	Duration     time.Duration `json:"duration" swaggertype:"integer" format:"int64"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CreateScanInput defines required fields to create a scan.
type CreateScanInput struct {
	SeedURL string `json:"seed_url" binding:"required,url"`
	Depth   int    `json:"depth" binding:"gte=0"`
}

// ToDTO converts a Scan model to a ScanDTO.
func (s *Scan) ToDTO() *ScanDTO {
	return &ScanDTO{
		ID:           s.ID,
		UserID:       s.UserID,
		SeedURL:      s.SeedURL,
		Depth:        s.Depth,
		Status:       s.Status,
		PagesVisited: s.PagesVisited,
		BrokenCount:  s.BrokenCount,
		Duration:     time.Duration(s.Duration),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ScanFromCreateInput maps CreateScanInput to a Scan model.
func ScanFromCreateInput(userID uint, input *CreateScanInput) *Scan {
	now := time.Now()
	return &Scan{
		UserID:    userID,
		SeedURL:   input.SeedURL,
		Depth:     input.Depth,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
