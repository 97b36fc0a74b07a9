package scanner

import (
	"fmt"
	"time"
)

// ImageStatus classifies the outcome of a single image liveness probe.
type ImageStatus string

const (
	StatusOK         ImageStatus = "ok"
	StatusMissingSrc ImageStatus = "missing-src"
	StatusNotFound   ImageStatus = "not-found"
	StatusCheckError ImageStatus = "check-error"
)

// MissingSrc marks an img element whose src attribute is absent or empty.
const MissingSrc = "MISSING_SRC"

// Finding records the probe outcome for one image reference on one page.
type Finding struct {
	Page       string      `json:"page"`
	Image      string      `json:"image"` // MissingSrc when the attribute was absent or empty
	Status     ImageStatus `json:"status"`
	HTTPStatus int         `json:"http_status"` // 0 when no probe was issued or it failed before a response
}

// Broken reports whether the finding describes a broken image.
func (f Finding) Broken() bool { return f.Status != StatusOK }

// Result aggregates the broken findings of a whole scan run plus crawl metadata.
type Result struct {
	Seed         string        `json:"seed"`
	PagesVisited int           `json:"pages_visited"`
	Findings     []Finding     `json:"findings"` // broken findings only, in discovery order
	Duration     time.Duration `json:"duration"`
}

// FatalError is returned when the seed URL is malformed or the seed page is
// unreachable. Any later page failure degrades into the Result instead.
type FatalError struct {
	Seed  string
	Cause error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("scan of %q failed: %v", e.Seed, e.Cause)
}

func (e *FatalError) Unwrap() error { return e.Cause }
