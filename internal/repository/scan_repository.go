package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/scanner"
)

// ScanRepository defines DB ops around Scan entities.
type ScanRepository interface {
	Create(s *model.Scan) error
	FindByID(id uint) (*model.Scan, error)
	ListByUser(userID uint, p Pagination) ([]model.Scan, error)
	CountByUser(userID uint) (int, error)
	UpdateStatus(id uint, status string) error
	// SaveResult stores the engine result atomically: crawl metadata on the
	// scan row plus one finding row per broken image.
	SaveResult(id uint, res *scanner.Result) error
	Delete(id uint) error
}

type scanRepo struct {
	db *gorm.DB
}

func NewScanRepo(db *gorm.DB) ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Create(s *model.Scan) error {
	return r.db.Create(s).Error
}

func (r *scanRepo) FindByID(id uint) (*model.Scan, error) {
	var s model.Scan
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scanRepo) ListByUser(userID uint, p Pagination) ([]model.Scan, error) {
	var scans []model.Scan
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&scans).Error
	return scans, err
}

func (r *scanRepo) CountByUser(userID uint) (int, error) {
	var count int64
	err := r.db.
		Model(&model.Scan{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return int(count), err
}

func (r *scanRepo) UpdateStatus(id uint, status string) error {
	res := r.db.
		Model(&model.Scan{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *scanRepo) SaveResult(id uint, res *scanner.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"pages_visited": res.PagesVisited,
			"broken_count":  len(res.Findings),
			"duration":      int64(res.Duration),
		}
		if err := tx.Model(&model.Scan{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if len(res.Findings) == 0 {
			return nil
		}
		findings := make([]model.Finding, len(res.Findings))
		for i, f := range res.Findings {
			findings[i] = *model.FindingFromScanner(id, f)
		}
		return tx.CreateInBatches(&findings, 500).Error
	})
}

func (r *scanRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Scan{}, id)
	if res.RowsAffected == 0 {
		return errors.New("scan not found")
	}
	return res.Error
}
