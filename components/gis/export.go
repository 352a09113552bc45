package gis

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportTable is a flat table handed to the CSV and print exporters.
type ExportTable struct {
	Title    string     `json:"title,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	Headers  []string   `json:"headers"`
	Rows     [][]string `json:"rows"`
	Totals   []string   `json:"totals,omitempty"`
}

// DefaultTaxReport returns the property tax table offered for download.
func DefaultTaxReport() ExportTable {
	return ExportTable{
		Title:    "Property Tax Report",
		Subtitle: "Municipal Corporation GIS Dashboard",
		Headers:  []string{"Property No", "Owner Name", "Ward", "Type", "Tax Amount", "Status", "Last Payment"},
		Rows: [][]string{
			{"WD1-NAU-001", "Rajesh Kumar", "Ward 1", "Residential", "₹45,600", "Paid", "2024-12-15"},
			{"WD2-KOP-145", "Priya Sharma", "Ward 2", "Commercial", "₹128,400", "Pending", "-"},
			{"WD4-WAG-289", "Amit Patel", "Ward 4", "Industrial", "₹245,000", "Partial", "2024-11-20"},
			{"WD3-VAR-067", "Sunita Mehta", "Ward 3", "Residential", "₹52,300", "Paid", "2024-12-18"},
			{"WD6-MAJ-234", "Vikram Singh", "Ward 6", "Commercial", "₹165,800", "Overdue", "2024-09-10"},
		},
	}
}

// ExportFileName is the download name for a CSV export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("property_tax_report_%s.csv", now.Format("2006-01-02"))
}

// CSVOptions tweaks WriteCSV.
type CSVOptions struct {
	// IncludeTitle writes the title and subtitle lines before the header.
	IncludeTitle bool
}

// WriteCSV serializes the table. Values containing commas or quotes are quoted.
func WriteCSV(w io.Writer, table ExportTable, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	if opts.IncludeTitle && table.Title != "" {
		if err := cw.Write([]string{table.Title}); err != nil {
			return fmt.Errorf("gis: write csv title: %w", err)
		}
		if table.Subtitle != "" {
			if err := cw.Write([]string{table.Subtitle}); err != nil {
				return fmt.Errorf("gis: write csv subtitle: %w", err)
			}
		}
	}
	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("gis: write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("gis: write csv row: %w", err)
		}
	}
	if len(table.Totals) > 0 {
		if err := cw.Write(table.Totals); err != nil {
			return fmt.Errorf("gis: write csv totals: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("gis: flush csv: %w", err)
	}
	return nil
}

// WritePrintableReport renders the table as a self-printing HTML page.
func WritePrintableReport(w io.Writer, table ExportTable, generated time.Time) error {
	renderer, err := defaultRenderer()
	if err != nil {
		return fmt.Errorf("gis: report renderer: %w", err)
	}
	_, err = renderer.Render("report", map[string]any{
		"title":     table.Title,
		"subtitle":  table.Subtitle,
		"headers":   table.Headers,
		"rows":      table.Rows,
		"totals":    table.Totals,
		"generated": generated.Format("02 Jan 2006 15:04"),
	}, w)
	if err != nil {
		return fmt.Errorf("gis: render report: %w", err)
	}
	return nil
}
