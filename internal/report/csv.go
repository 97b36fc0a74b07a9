package report

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/dimos082/website-monitor/internal/scanner"
)

// FindingRow is the CSV shape of one broken-image finding.
type FindingRow struct {
	Page       string `csv:"Page"`
	Image      string `csv:"Image"`
	Status     string `csv:"Status"`
	HTTPStatus int    `csv:"HTTP Status"`
}

// WriteCSV exports the scan findings as CSV, one row per broken image.
func WriteCSV(w io.Writer, res *scanner.Result) error {
	rows := make([]FindingRow, 0, len(res.Findings))
	for _, f := range res.Findings {
		rows = append(rows, FindingRow{
			Page:       f.Page,
			Image:      f.Image,
			Status:     string(f.Status),
			HTTPStatus: f.HTTPStatus,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// SaveCSV writes the CSV export to the given path.
func SaveCSV(path string, res *scanner.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, res); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
