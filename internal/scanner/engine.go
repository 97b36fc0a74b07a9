package scanner

import (
	"context"
	"errors"
	"net/url"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout          = 5 * time.Second
	DefaultProbeConcurrency = 12
	DefaultUserAgent        = "WebsiteMonitor-Bot/1.0"
)

// Options configures an Engine. Zero values fall back to the defaults above.
type Options struct {
	Timeout          time.Duration // per network operation, not per scan
	ProbeConcurrency int
	UserAgent        string
	Logger           *logrus.Logger
}

// Engine crawls a site breadth-first from a seed page, probing every image it
// finds. An Engine holds no per-run state and may run any number of scans.
type Engine struct {
	timeout time.Duration
	conc    int
	fetcher *pageFetcher
	log     *logrus.Logger
}

func New(opts Options) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ProbeConcurrency <= 0 {
		opts.ProbeConcurrency = DefaultProbeConcurrency
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Engine{
		timeout: opts.Timeout,
		conc:    opts.ProbeConcurrency,
		fetcher: newPageFetcher(opts.Timeout, opts.UserAgent),
		log:     opts.Logger,
	}
}

// frontierEntry pairs a discovered URL with its remaining depth budget.
type frontierEntry struct {
	url    string
	budget int
}

// Scan crawls from seed following same-site links while the depth budget
// lasts, and returns the broken-image findings plus crawl metadata.
//
// A malformed seed or a failed seed fetch yields a *FatalError and no Result.
// Every later failure, a page that cannot be fetched or an image probe that
// errors out, degrades into the Result instead of aborting the scan.
func (e *Engine) Scan(ctx context.Context, seed string, depth int) (*Result, error) {
	start := time.Now()

	su, err := url.Parse(seed)
	if err != nil {
		return nil, &FatalError{Seed: seed, Cause: err}
	}
	if (su.Scheme != "http" && su.Scheme != "https") || su.Hostname() == "" {
		return nil, &FatalError{Seed: seed, Cause: errors.New("seed must be an absolute http(s) URL")}
	}
	if depth < 0 {
		return nil, &FatalError{Seed: seed, Cause: errors.New("depth must be non-negative")}
	}
	host := su.Hostname()

	check := newImageChecker(e.conc, e.timeout)
	visited := mapset.NewThreadUnsafeSet[string]()
	frontier := []frontierEntry{{url: seed, budget: depth}}
	res := &Result{Seed: seed}

	for len(frontier) > 0 {
		if ctx.Err() != nil && res.PagesVisited > 0 {
			break // hand back what we have, the caller set a deadline
		}

		entry := frontier[0]
		frontier = frontier[1:]
		if visited.Contains(entry.url) {
			continue
		}
		visited.Add(entry.url)

		e.log.WithFields(logrus.Fields{"url": entry.url, "budget": entry.budget}).Info("crawling page")

		doc, err := e.fetcher.fetch(ctx, entry.url)
		if err != nil {
			if res.PagesVisited == 0 {
				return nil, &FatalError{Seed: seed, Cause: err}
			}
			e.log.WithError(err).WithField("url", entry.url).Warn("page fetch failed, skipping")
			continue
		}
		res.PagesVisited++

		base, err := url.Parse(entry.url)
		if err != nil {
			continue // cannot happen for URLs that passed extraction
		}

		for _, f := range check.run(ctx, entry.url, extractImages(doc, base)) {
			if f.Broken() {
				e.log.WithFields(logrus.Fields{
					"page": f.Page, "image": f.Image, "status": f.Status,
				}).Warn("broken image")
				res.Findings = append(res.Findings, f)
			}
		}

		if entry.budget > 0 {
			for _, link := range extractLinks(doc, base, host) {
				if !visited.Contains(link) {
					frontier = append(frontier, frontierEntry{url: link, budget: entry.budget - 1})
				}
			}
		}
	}

	res.Duration = time.Since(start)
	e.log.WithFields(logrus.Fields{
		"seed":     seed,
		"pages":    res.PagesVisited,
		"broken":   len(res.Findings),
		"duration": res.Duration.Truncate(time.Millisecond),
	}).Info("scan completed")
	return res, nil
}
