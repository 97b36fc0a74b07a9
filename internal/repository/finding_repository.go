package repository

import (
	"gorm.io/gorm"

	"github.com/dimos082/website-monitor/internal/model"
)

// FindingRepository defines DB ops for Finding entities.
type FindingRepository interface {
	ListByScan(scanID uint, p Pagination) ([]model.Finding, error)
	ListAllByScan(scanID uint) ([]model.Finding, error)
	CountByScan(scanID uint) (int, error)
}

type findingRepo struct {
	db *gorm.DB
}

func NewFindingRepo(db *gorm.DB) FindingRepository {
	return &findingRepo{db: db}
}

func (r *findingRepo) ListByScan(scanID uint, p Pagination) ([]model.Finding, error) {
	var findings []model.Finding
	err := r.db.
		Where("scan_id = ?", scanID).
		Order("id ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&findings).Error
	return findings, err
}

// ListAllByScan returns every finding of a scan, used for report rendering.
func (r *findingRepo) ListAllByScan(scanID uint) ([]model.Finding, error) {
	var findings []model.Finding
	err := r.db.
		Where("scan_id = ?", scanID).
		Order("id ASC").
		Find(&findings).Error
	return findings, err
}

func (r *findingRepo) CountByScan(scanID uint) (int, error) {
	var count int64
	err := r.db.
		Model(&model.Finding{}).
		Where("scan_id = ?", scanID).
		Count(&count).Error
	return int(count), err
}
