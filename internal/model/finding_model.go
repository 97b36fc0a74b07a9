package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/dimos082/website-monitor/internal/scanner"
)

// Finding represents one broken image discovered during a scan.
type Finding struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ScanID     uint           `gorm:"not null;index" json:"scan_id"`
	PageURL    string         `gorm:"type:text;not null" json:"page_url"`
	ImageURL   string         `gorm:"type:text" json:"image_url"` // empty when the src attribute was missing
	Status     string         `gorm:"type:enum('missing-src','not-found','check-error');not null" json:"status"`
	HTTPStatus int            `json:"http_status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for Finding.
func (Finding) TableName() string {
	return "findings"
}

// FindingDTO is a data transfer object for Finding responses.
type FindingDTO struct {
	ID         uint      `json:"id"`
	ScanID     uint      `json:"scan_id"`
	PageURL    string    `json:"page_url"`
	ImageURL   string    `json:"image_url"`
	Status     string    `json:"status"`
	HTTPStatus int       `json:"http_status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToDTO transforms a Finding model into a FindingDTO for responses.
func (f *Finding) ToDTO() *FindingDTO {
	return &FindingDTO{
		ID:         f.ID,
		ScanID:     f.ScanID,
		PageURL:    f.PageURL,
		ImageURL:   f.ImageURL,
		Status:     f.Status,
		HTTPStatus: f.HTTPStatus,
		CreatedAt:  f.CreatedAt,
	}
}

// FindingFromScanner maps an engine finding to a Finding row. The engine's
// missing-src marker is stored as an empty image URL.
func FindingFromScanner(scanID uint, f scanner.Finding) *Finding {
	image := f.Image
	if image == scanner.MissingSrc {
		image = ""
	}
	return &Finding{
		ScanID:     scanID,
		PageURL:    f.Page,
		ImageURL:   image,
		Status:     string(f.Status),
		HTTPStatus: f.HTTPStatus,
	}
}
