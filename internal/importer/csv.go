// Package importer reads expense records from CSV exports. The expected
// layout is a header row naming at least date, amount and category columns;
// column order is free and extra columns are ignored.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/tallyhq/tally/internal/model"
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// CSVReader parses expense CSVs.
type CSVReader struct {
	// ShowProgress draws a progress bar on stderr while parsing.
	ShowProgress bool
}

// NewCSVReader creates a CSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Read parses the CSV into expense records. Rows missing a parseable date or
// amount fail the whole import so a typo cannot silently drop expenses.
func (r *CSVReader) Read(reader io.Reader) ([]model.ExpenseRecord, error) {
	cr := csv.NewReader(reader)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if r.ShowProgress {
		bar = progressbar.Default(int64(len(records)-1), "importing expenses")
	}

	expenses := make([]model.ExpenseRecord, 0, len(records)-1)
	for i, row := range records[1:] {
		expense, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		expenses = append(expenses, expense)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return expenses, nil
}

type columnMap struct {
	date        int
	amount      int
	category    int
	subcategory int
	description int
	hasReceipt  int
	isRecurring int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{
		date: -1, amount: -1, category: -1,
		subcategory: -1, description: -1, hasReceipt: -1, isRecurring: -1,
	}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "amount":
			cols.amount = i
		case "category":
			cols.category = i
		case "subcategory":
			cols.subcategory = i
		case "description", "merchant", "payee":
			cols.description = i
		case "has_receipt", "receipt":
			cols.hasReceipt = i
		case "is_recurring", "recurring":
			cols.isRecurring = i
		}
	}
	if cols.date < 0 || cols.amount < 0 || cols.category < 0 {
		return cols, fmt.Errorf("CSV header must include date, amount and category columns")
	}
	return cols, nil
}

func parseRow(row []string, cols columnMap) (model.ExpenseRecord, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseDate(field(cols.date))
	if err != nil {
		return model.ExpenseRecord{}, err
	}

	amountText := strings.TrimPrefix(strings.ReplaceAll(field(cols.amount), ",", ""), "$")
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("invalid amount %q", field(cols.amount))
	}

	return model.ExpenseRecord{
		ID:          uuid.NewString(),
		Date:        date,
		Category:    strings.ToLower(field(cols.category)),
		Subcategory: field(cols.subcategory),
		Description: field(cols.description),
		Amount:      amount,
		HasReceipt:  parseBool(field(cols.hasReceipt)),
		IsRecurring: parseBool(field(cols.isRecurring)),
	}, nil
}

func parseDate(text string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", text)
}

func parseBool(text string) bool {
	switch strings.ToLower(text) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
