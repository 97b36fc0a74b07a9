package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/dimos082/website-monitor/internal/scanner"
)

// now is a variable so report timestamps can be pinned in tests.
var now = time.Now

const htmlTemplate = `<html><head>
<meta charset='utf-8'>
<title>Broken Images Report</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ccc; padding: 8px; }
  th { background-color: #f9f9f9; }
  .error { color: red; font-weight: bold; }
</style></head><body>
<h1>Broken Images Report</h1>
<p>Report generated on: <strong>{{.GeneratedAt}}</strong></p>
<h2>Summary</h2>
<p>Seed URL: <a href='{{.Seed}}'>{{.Seed}}</a></p>
<p>Pages Visited: {{.PagesVisited}}</p>
<p>Broken Images: <span class='error'>{{len .Findings}}</span></p>
<p>Scan Duration: <span class='error'>{{.Elapsed}} seconds</span></p>
<table>
<tr><th>Broken Image URL</th><th>Classification</th><th>Found on Page</th></tr>
{{- range .Findings}}
<tr><td>{{.ImageRef}}</td><td>{{.Status}}</td><td><a href='{{.Page}}'>{{.Page}}</a></td></tr>
{{- end}}
</table></body></html>
`

var reportTmpl = template.Must(template.New("report").Parse(htmlTemplate))

type row struct {
	ImageRef string
	Status   scanner.ImageStatus
	Page     string
}

type page struct {
	GeneratedAt  string
	Seed         string
	PagesVisited int
	Elapsed      string
	Findings     []row
}

// WriteHTML renders the broken-images report for a finished scan.
func WriteHTML(w io.Writer, res *scanner.Result) error {
	p := page{
		GeneratedAt:  now().Format("2006-01-02 15:04:05"),
		Seed:         res.Seed,
		PagesVisited: res.PagesVisited,
		Elapsed:      fmt.Sprintf("%.2f", res.Duration.Seconds()),
	}
	for _, f := range res.Findings {
		ref := f.Image
		if ref == scanner.MissingSrc {
			ref = "MISSING"
		}
		p.Findings = append(p.Findings, row{ImageRef: ref, Status: f.Status, Page: f.Page})
	}
	return reportTmpl.Execute(w, p)
}

// SaveHTML writes the report to the given path.
func SaveHTML(path string, res *scanner.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(f, res); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
