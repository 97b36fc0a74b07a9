package crawler

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/repository"
)

type worker struct {
	id     int
	ctx    context.Context
	repo   repository.ScanRepository
	engine Scanner
	log    *logrus.Logger
}

func newWorker(id int, ctx context.Context, r repository.ScanRepository, e Scanner, log *logrus.Logger) *worker {
	return &worker{id: id, ctx: ctx, repo: r, engine: e, log: log}
}

// run processes scan IDs from the channel until it closes or the context ends.
func (w *worker) run(tasks <-chan uint) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case id, ok := <-tasks:
			if !ok {
				return
			}
			if id == 0 {
				continue
			}
			w.process(id)
		}
	}
}

// process loads a queued scan, runs the engine, and persists the outcome.
func (w *worker) process(id uint) {
	logw := w.log.WithFields(logrus.Fields{"worker": w.id, "scan": id})

	rec, err := w.repo.FindByID(id)
	if err != nil {
		setErr(w.repo, id, err)
		logw.WithError(err).Error("lookup")
		return
	}

	// A stop request issued while the scan sat in the queue wins.
	if rec.Status == model.StatusStopped {
		logw.Info("aborting, scan was stopped while queued")
		return
	}

	if err := w.repo.UpdateStatus(id, model.StatusRunning); err != nil {
		logw.WithError(err).Error("cannot set running")
		return
	}

	start := time.Now()
	res, err := w.engine.Scan(w.ctx, rec.SeedURL, rec.Depth)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_ = w.repo.UpdateStatus(id, model.StatusStopped)
			logw.Info("stopped by ctx")
			return
		}
		setErr(w.repo, id, err)
		logw.WithError(err).Error("scan")
		return
	}

	if err := w.repo.SaveResult(id, res); err != nil {
		setErr(w.repo, id, err)
		logw.WithError(err).Error("save")
		return
	}

	updated, err := w.repo.FindByID(id)
	if err != nil {
		logw.WithError(err).Error("lookup after scan")
		return
	}
	if updated.Status != model.StatusStopped {
		_ = w.repo.UpdateStatus(id, model.StatusDone)
	}
	logw.WithFields(logrus.Fields{
		"pages":    res.PagesVisited,
		"broken":   len(res.Findings),
		"duration": time.Since(start).Truncate(time.Millisecond),
	}).Info("done")
}

// setErr updates the status to Error if the error is not a record not found.
func setErr(repo repository.ScanRepository, id uint, err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		_ = repo.UpdateStatus(id, model.StatusError)
	}
}
