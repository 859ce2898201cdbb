package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"resource-console/models"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ExportFormats lists the formats Export accepts.
var ExportFormats = []string{"json", "csv", "pdf"}

type expenseReport struct {
	Expenses []models.Expense   `json:"expenses"`
	Summary  models.ExpenseTotal `json:"summary"`
}

// Export writes the cached expenses and totals to w.
func (s *ExpenseService) Export(w io.Writer, format string) error {
	report := expenseReport{Expenses: s.Items(), Summary: s.Total()}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "csv":
		return writeExpenseCSV(w, report)
	case "pdf":
		return writeExpensePDF(w, report)
	default:
		return fmt.Errorf("export %q: %w", format, ErrUnknownFormat)
	}
}

func writeExpenseCSV(w io.Writer, r expenseReport) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "date", "category", "amount", "description"})
	for _, e := range r.Expenses {
		_ = cw.Write([]string{fmt.Sprint(e.ID), e.Date.String(), string(e.Category), e.Amount.StringFixed(2), e.Description})
	}
	cw.Flush()
	return cw.Error()
}

func writeExpensePDF(w io.Writer, r expenseReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Expense Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	for _, e := range r.Expenses {
		line := fmt.Sprintf("%s  %-13s %10s  %s", e.Date, e.Category, e.Amount.StringFixed(2), e.Description)
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 8, "Total: "+r.Summary.Total.StringFixed(2))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, c := range models.Categories {
		if amount, ok := r.Summary.ByCategory[c]; ok {
			pdf.MultiCell(0, 6, fmt.Sprintf("%-13s %10s", c, amount.StringFixed(2)), "0", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
