package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-gis-dashboard/components/gis"
)

type exportCSVCmd struct {
	Out     string `short:"o" type:"path" help:"Output file (defaults to property_tax_report_<date>.csv)."`
	NoTitle bool   `name:"no-title" help:"Omit the title and subtitle rows."`
}

func (cmd *exportCSVCmd) Run() error {
	out := cmd.Out
	if out == "" {
		out = gis.ExportFileName(time.Now())
	}
	f, err := os.Create(out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gisdash: create %s: %w", out, err)
	}
	defer f.Close()
	if err := gis.WriteCSV(f, gis.DefaultTaxReport(), gis.CSVOptions{IncludeTitle: !cmd.NoTitle}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %s\n", out)
	return nil
}

type exportReportCmd struct {
	Out string `short:"o" type:"path" default:"property_tax_report.html" help:"Output HTML file."`
}

func (cmd *exportReportCmd) Run() error {
	f, err := os.Create(cmd.Out) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gisdash: create %s: %w", cmd.Out, err)
	}
	defer f.Close()
	if err := gis.WritePrintableReport(f, gis.DefaultTaxReport(), time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote %s\n", cmd.Out)
	return nil
}
