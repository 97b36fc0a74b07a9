package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// pageFetcher retrieves and parses HTML pages with a bounded per-request timeout.
type pageFetcher struct {
	client    *http.Client
	userAgent string
}

func newPageFetcher(timeout time.Duration, userAgent string) *pageFetcher {
	return &pageFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// fetch issues a single GET and returns the parsed document. A network error,
// non-2xx status, or non-HTML content type all count as a fetch failure.
// There are no retries.
func (f *pageFetcher) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("non-HTML content type %q", ct)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// extractImages yields one reference per img element: the resolved absolute
// source URL, or MissingSrc when the attribute is absent or empty.
func extractImages(doc *goquery.Document, base *url.URL) []string {
	var refs []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			refs = append(refs, MissingSrc)
			return
		}
		if abs := resolve(base, src); abs != "" {
			refs = append(refs, abs)
			return
		}
		// unparsable src, let the checker classify it
		refs = append(refs, src)
	})
	return refs
}

// extractLinks yields resolved a[href] targets restricted to http(s) URLs on
// the given host. The host is always the seed's host, which keeps the crawl
// on the seed site.
func extractLinks(doc *goquery.Document, base *url.URL, host string) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := resolve(base, href)
		if abs == "" {
			return
		}
		u, err := url.Parse(abs)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() != host {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})
	return links
}

// resolve resolves a possibly relative reference against a base URL.
func resolve(base *url.URL, ref string) string {
	p, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return base.ResolveReference(p).String()
}
