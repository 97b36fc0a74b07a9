package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/namsral/flag"
	"github.com/rodaine/table"
	"github.com/sirupsen/logrus"

	"github.com/dimos082/website-monitor/internal/report"
	"github.com/dimos082/website-monitor/internal/scanner"
)

var exitFunc = os.Exit

// main runs a single scan and writes the HTML report. Every flag can also be
// supplied as an environment variable (SCAN_URL, SCAN_DEPTH, ...), with the
// command-line value taking precedence.
func main() {
	fs := flag.NewFlagSetWithEnvPrefix(os.Args[0], "SCAN", flag.ExitOnError)
	seed := fs.String("url", "", "seed URL to scan (required)")
	output := fs.String("output", "report.html", "HTML report output path")
	depth := fs.Int("depth", 1, "link recursion depth")
	timeout := fs.Int("timeout", 5, "HTTP request timeout in seconds")
	csvPath := fs.String("csv", "", "optional CSV export path")
	logFile := fs.String("logfile", "", "optional log file, appended to")
	_ = fs.Parse(os.Args[1:])

	if *seed == "" {
		fs.Usage()
		exitFunc(2)
		return
	}

	log := logrus.New()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Fatal("cannot open log file")
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	engine := scanner.New(scanner.Options{
		Timeout: time.Duration(*timeout) * time.Second,
		Logger:  log,
	})

	res, err := engine.Scan(context.Background(), *seed, *depth)
	if err != nil {
		log.WithError(err).Error("scan failed")
		exitFunc(1)
		return
	}

	if err := report.SaveHTML(*output, res); err != nil {
		log.WithError(err).Error("cannot write report")
		exitFunc(1)
		return
	}
	log.WithField("path", *output).Info("report generated")

	if *csvPath != "" {
		if err := report.SaveCSV(*csvPath, res); err != nil {
			log.WithError(err).Error("cannot write csv export")
			exitFunc(1)
			return
		}
		log.WithField("path", *csvPath).Info("csv export written")
	}

	printSummary(res)
}

// printSummary writes the broken findings to the console as a table.
func printSummary(res *scanner.Result) {
	tbl := table.New("Image", "Status", "Found on Page")
	for _, f := range res.Findings {
		image := f.Image
		if image == scanner.MissingSrc {
			image = "MISSING"
		}
		tbl.AddRow(image, f.Status, f.Page)
	}
	tbl.Print()

	summary := table.New("Pages Visited", "Broken Images", "Scan Duration")
	summary.AddRow(res.PagesVisited, len(res.Findings), res.Duration.Truncate(time.Millisecond))
	summary.Print()
}
