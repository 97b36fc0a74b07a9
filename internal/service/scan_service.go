package service

import (
	"fmt"
	"io"
	"time"

	"github.com/dimos082/website-monitor/internal/crawler"
	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/report"
	"github.com/dimos082/website-monitor/internal/repository"
	"github.com/dimos082/website-monitor/internal/scanner"
)

// ScanService defines business operations around scans.
type ScanService interface {
	Create(userID uint, input *model.CreateScanInput) (uint, error)
	Get(id uint) (*model.ScanDTO, error)
	List(userID uint, p repository.Pagination) (*model.PaginatedResponse[model.ScanDTO], error)
	Start(id uint) error
	Stop(id uint) error
	Delete(id uint) error
	Findings(id uint, p repository.Pagination) (*model.PaginatedResponse[model.FindingDTO], error)
	// WriteReport renders the stored findings of a finished scan as the HTML report.
	WriteReport(id uint, w io.Writer) error
}

type scanService struct {
	scans    repository.ScanRepository
	findings repository.FindingRepository
	pool     crawler.Pool
}

// NewScanService constructs a ScanService.
func NewScanService(scans repository.ScanRepository, findings repository.FindingRepository, pool crawler.Pool) ScanService {
	return &scanService{scans: scans, findings: findings, pool: pool}
}

// Create stores a new scan row and queues it for the worker pool.
func (s *scanService) Create(userID uint, input *model.CreateScanInput) (uint, error) {
	if input.Depth == 0 {
		input.Depth = 1
	}
	rec := model.ScanFromCreateInput(userID, input)
	if err := s.scans.Create(rec); err != nil {
		return 0, err
	}
	s.pool.Enqueue(rec.ID)
	return rec.ID, nil
}

func (s *scanService) Get(id uint) (*model.ScanDTO, error) {
	rec, err := s.scans.FindByID(id)
	if err != nil {
		return nil, err
	}
	return rec.ToDTO(), nil
}

func (s *scanService) List(userID uint, p repository.Pagination) (*model.PaginatedResponse[model.ScanDTO], error) {
	scans, err := s.scans.ListByUser(userID, p)
	if err != nil {
		return nil, err
	}
	total, err := s.scans.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.ScanDTO, len(scans))
	for i := range scans {
		dtos[i] = *scans[i].ToDTO()
	}
	return &model.PaginatedResponse[model.ScanDTO]{
		Data:       dtos,
		Pagination: paginationMeta(p, total),
	}, nil
}

// Start re-queues a scan, e.g. after an error or a stop.
func (s *scanService) Start(id uint) error {
	if _, err := s.scans.FindByID(id); err != nil {
		return fmt.Errorf("cannot start scan: %w", err)
	}
	if err := s.scans.UpdateStatus(id, model.StatusQueued); err != nil {
		return err
	}
	s.pool.Enqueue(id)
	return nil
}

func (s *scanService) Stop(id uint) error {
	if _, err := s.scans.FindByID(id); err != nil {
		return fmt.Errorf("cannot stop scan: %w", err)
	}
	return s.scans.UpdateStatus(id, model.StatusStopped)
}

func (s *scanService) Delete(id uint) error {
	return s.scans.Delete(id)
}

func (s *scanService) Findings(id uint, p repository.Pagination) (*model.PaginatedResponse[model.FindingDTO], error) {
	rows, err := s.findings.ListByScan(id, p)
	if err != nil {
		return nil, err
	}
	total, err := s.findings.CountByScan(id)
	if err != nil {
		return nil, err
	}

	dtos := make([]model.FindingDTO, len(rows))
	for i := range rows {
		dtos[i] = *rows[i].ToDTO()
	}
	return &model.PaginatedResponse[model.FindingDTO]{
		Data:       dtos,
		Pagination: paginationMeta(p, total),
	}, nil
}

func (s *scanService) WriteReport(id uint, w io.Writer) error {
	rec, err := s.scans.FindByID(id)
	if err != nil {
		return err
	}
	rows, err := s.findings.ListAllByScan(id)
	if err != nil {
		return err
	}
	return report.WriteHTML(w, resultFromModel(rec, rows))
}

// resultFromModel rebuilds the engine result shape from persisted rows.
func resultFromModel(rec *model.Scan, rows []model.Finding) *scanner.Result {
	res := &scanner.Result{
		Seed:         rec.SeedURL,
		PagesVisited: rec.PagesVisited,
		Duration:     time.Duration(rec.Duration),
	}
	for _, row := range rows {
		image := row.ImageURL
		if image == "" {
			image = scanner.MissingSrc
		}
		res.Findings = append(res.Findings, scanner.Finding{
			Page:       row.PageURL,
			Image:      image,
			Status:     scanner.ImageStatus(row.Status),
			HTTPStatus: row.HTTPStatus,
		})
	}
	return res
}

func paginationMeta(p repository.Pagination, total int) model.PaginationMetaDTO {
	size := p.Limit()
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return model.PaginationMetaDTO{
		Page:       p.Page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
	}
}
