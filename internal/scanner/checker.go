package scanner

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// robots caches parsed robots.txt data per host to avoid repeated requests.
var robots sync.Map

// probe is the outcome of one image liveness check.
type probe struct {
	status ImageStatus
	code   int
}

// imageChecker probes image URLs concurrently. One checker lives for one scan
// run; its result cache never leaks into a later run.
type imageChecker struct {
	conc   int
	client *http.Client

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]probe
}

func newImageChecker(conc int, timeout time.Duration) *imageChecker {
	if conc <= 0 {
		conc = 12
	}
	return &imageChecker{
		conc:   conc,
		client: &http.Client{Timeout: timeout},
		cache:  make(map[string]probe),
	}
}

// run probes every reference found on a page and returns one finding per
// reference, in the order the references appeared on the page. The probes run
// on a bounded set of workers and are all collected before run returns.
func (c *imageChecker) run(ctx context.Context, page string, refs []string) []Finding {
	findings := make([]Finding, len(refs))
	in := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < c.conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range in {
				p := c.classify(ctx, refs[i])
				findings[i] = Finding{
					Page:       page,
					Image:      refs[i],
					Status:     p.status,
					HTTPStatus: p.code,
				}
			}
		}()
	}

	go func() {
		for i := range refs {
			in <- i
		}
		close(in)
	}()

	wg.Wait()
	return findings
}

// classify maps one image reference to its status. The missing marker and
// non-http(s) schemes are classified without any network call. Identical URLs
// are probed at most once per scan.
func (c *imageChecker) classify(ctx context.Context, ref string) probe {
	if ref == MissingSrc {
		return probe{status: StatusMissingSrc}
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return probe{status: StatusCheckError}
	}

	v, _, _ := c.group.Do(ref, func() (any, error) {
		c.mu.Lock()
		p, ok := c.cache[ref]
		c.mu.Unlock()
		if ok {
			return p, nil
		}

		p = classifyCode(c.head(ctx, ref, u))

		c.mu.Lock()
		c.cache[ref] = p
		c.mu.Unlock()
		return p, nil
	})
	return v.(probe)
}

func classifyCode(code int) probe {
	switch {
	case code >= 200 && code < 300:
		return probe{status: StatusOK, code: code}
	case code == http.StatusNotFound:
		return probe{status: StatusNotFound, code: code}
	default:
		return probe{status: StatusCheckError, code: code}
	}
}

// head performs a HEAD request to check the image status, falling back to GET
// when the server rejects HEAD, and respecting robots.txt rules.
func (c *imageChecker) head(ctx context.Context, raw string, u *url.URL) int {
	if !robotsAllowed(c.client, u) {
		return http.StatusForbidden
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return 0
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		req.Method = http.MethodGet
		resp2, err := c.client.Do(req)
		if err != nil {
			return 0
		}
		resp2.Body.Close()
		return resp2.StatusCode
	}
	return resp.StatusCode
}

// robotsAllowed checks whether probing the URL is allowed by robots.txt.
func robotsAllowed(c *http.Client, u *url.URL) bool {
	if u.Host == "" {
		return true
	}
	if val, ok := robots.Load(u.Host); ok {
		if val == nil {
			return true
		}
		return val.(*robotstxt.RobotsData).TestAgent(u.Path, "*")
	}

	resp, err := c.Get(u.Scheme + "://" + u.Host + "/robots.txt")
	if err != nil {
		robots.Store(u.Host, nil)
		return true
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		robots.Store(u.Host, nil)
		return true
	}
	robots.Store(u.Host, data)
	return data.TestAgent(u.Path, "*")
}
