package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/repository"
	"github.com/dimos082/website-monitor/internal/scanner"
	"github.com/dimos082/website-monitor/internal/service"
)

// fakeScanRepo is an in-memory ScanRepository.
type fakeScanRepo struct {
	scans     map[uint]*model.Scan
	nextID    uint
	statusLog []string
	createErr error
}

func newFakeScanRepo() *fakeScanRepo {
	return &fakeScanRepo{scans: make(map[uint]*model.Scan), nextID: 1}
}

func (f *fakeScanRepo) Create(s *model.Scan) error {
	if f.createErr != nil {
		return f.createErr
	}
	s.ID = f.nextID
	f.nextID++
	f.scans[s.ID] = s
	return nil
}

func (f *fakeScanRepo) FindByID(id uint) (*model.Scan, error) {
	s, ok := f.scans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScanRepo) ListByUser(userID uint, p repository.Pagination) ([]model.Scan, error) {
	var out []model.Scan
	for _, s := range f.scans {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScanRepo) CountByUser(userID uint) (int, error) {
	n := 0
	for _, s := range f.scans {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeScanRepo) UpdateStatus(id uint, status string) error {
	s, ok := f.scans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	f.statusLog = append(f.statusLog, status)
	return nil
}

func (f *fakeScanRepo) SaveResult(id uint, res *scanner.Result) error {
	s, ok := f.scans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.PagesVisited = res.PagesVisited
	s.BrokenCount = len(res.Findings)
	s.Duration = int64(res.Duration)
	return nil
}

func (f *fakeScanRepo) Delete(id uint) error {
	if _, ok := f.scans[id]; !ok {
		return errors.New("scan not found")
	}
	delete(f.scans, id)
	return nil
}

// fakeFindingRepo is an in-memory FindingRepository.
type fakeFindingRepo struct {
	rows []model.Finding
}

func (f *fakeFindingRepo) ListByScan(scanID uint, p repository.Pagination) ([]model.Finding, error) {
	return f.byScan(scanID), nil
}

func (f *fakeFindingRepo) ListAllByScan(scanID uint) ([]model.Finding, error) {
	return f.byScan(scanID), nil
}

func (f *fakeFindingRepo) CountByScan(scanID uint) (int, error) {
	return len(f.byScan(scanID)), nil
}

func (f *fakeFindingRepo) byScan(scanID uint) []model.Finding {
	var out []model.Finding
	for _, r := range f.rows {
		if r.ScanID == scanID {
			out = append(out, r)
		}
	}
	return out
}

// fakePool records enqueued scan IDs.
type fakePool struct {
	enqueued []uint
}

func (p *fakePool) Start(ctx context.Context) {}
func (p *fakePool) Enqueue(id uint)           { p.enqueued = append(p.enqueued, id) }
func (p *fakePool) Shutdown()                 {}

func TestScanService_Create(t *testing.T) {
	repo := newFakeScanRepo()
	pool := &fakePool{}
	svc := service.NewScanService(repo, &fakeFindingRepo{}, pool)

	id, err := svc.Create(1, &model.CreateScanInput{SeedURL: "https://shop.example/"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), id)
	assert.Equal(t, []uint{1}, pool.enqueued, "a new scan is queued immediately")
	assert.Equal(t, 1, repo.scans[1].Depth, "zero depth falls back to 1")
	assert.Equal(t, model.StatusQueued, repo.scans[1].Status)
}

func TestScanService_Create_RepoError(t *testing.T) {
	repo := newFakeScanRepo()
	repo.createErr = errors.New("insert failed")
	pool := &fakePool{}
	svc := service.NewScanService(repo, &fakeFindingRepo{}, pool)

	_, err := svc.Create(1, &model.CreateScanInput{SeedURL: "https://shop.example/", Depth: 1})
	assert.Error(t, err)
	assert.Empty(t, pool.enqueued)
}

func TestScanService_Get(t *testing.T) {
	repo := newFakeScanRepo()
	repo.scans[3] = &model.Scan{ID: 3, UserID: 1, SeedURL: "https://shop.example/", Status: model.StatusDone}
	svc := service.NewScanService(repo, &fakeFindingRepo{}, &fakePool{})

	dto, err := svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), dto.ID)

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestScanService_List(t *testing.T) {
	repo := newFakeScanRepo()
	for i := uint(1); i <= 3; i++ {
		repo.scans[i] = &model.Scan{ID: i, UserID: 1, SeedURL: "https://shop.example/"}
	}
	svc := service.NewScanService(repo, &fakeFindingRepo{}, &fakePool{})

	page, err := svc.List(1, repository.Pagination{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3) // fake repo does not paginate rows
	assert.Equal(t, 3, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestScanService_StartAndStop(t *testing.T) {
	repo := newFakeScanRepo()
	repo.scans[5] = &model.Scan{ID: 5, UserID: 1, Status: model.StatusError}
	pool := &fakePool{}
	svc := service.NewScanService(repo, &fakeFindingRepo{}, pool)

	require.NoError(t, svc.Start(5))
	assert.Equal(t, model.StatusQueued, repo.scans[5].Status)
	assert.Equal(t, []uint{5}, pool.enqueued)

	require.NoError(t, svc.Stop(5))
	assert.Equal(t, model.StatusStopped, repo.scans[5].Status)
	assert.Len(t, pool.enqueued, 1, "stop never queues work")

	assert.Error(t, svc.Start(99))
	assert.Error(t, svc.Stop(99))
}

func TestScanService_Findings(t *testing.T) {
	findings := &fakeFindingRepo{rows: []model.Finding{
		{ID: 1, ScanID: 7, PageURL: "https://shop.example/", ImageURL: "https://shop.example/a.png", Status: "not-found", HTTPStatus: 404},
		{ID: 2, ScanID: 7, PageURL: "https://shop.example/b", ImageURL: "", Status: "missing-src"},
		{ID: 3, ScanID: 8, PageURL: "https://other.example/", ImageURL: "x", Status: "check-error"},
	}}
	svc := service.NewScanService(newFakeScanRepo(), findings, &fakePool{})

	page, err := svc.Findings(7, repository.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "not-found", page.Data[0].Status)
	assert.Equal(t, 2, page.Pagination.TotalItems)
}

func TestScanService_WriteReport(t *testing.T) {
	repo := newFakeScanRepo()
	repo.scans[7] = &model.Scan{
		ID: 7, UserID: 1,
		SeedURL:      "https://shop.example/",
		Status:       model.StatusDone,
		PagesVisited: 4,
		BrokenCount:  2,
		Duration:     int64(2 * time.Second),
	}
	findings := &fakeFindingRepo{rows: []model.Finding{
		{ID: 1, ScanID: 7, PageURL: "https://shop.example/", ImageURL: "https://shop.example/a.png", Status: "not-found", HTTPStatus: 404},
		{ID: 2, ScanID: 7, PageURL: "https://shop.example/b", ImageURL: "", Status: "missing-src"},
	}}
	svc := service.NewScanService(repo, findings, &fakePool{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteReport(7, &buf))

	out := buf.String()
	assert.Contains(t, out, "Broken Images Report")
	assert.Contains(t, out, "https://shop.example/a.png")
	assert.Contains(t, out, "Pages Visited: 4")
	assert.Contains(t, out, "<td>MISSING</td>", "empty stored image URL renders as the missing placeholder")

	assert.Error(t, svc.WriteReport(99, &buf))
}
