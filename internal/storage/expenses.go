package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// SaveExpenses inserts expense records for a tax year, skipping duplicates by
// content hash. Returns the number of newly inserted records.
func (s *SQLiteStorage) SaveExpenses(ctx context.Context, taxYear int, expenses []model.ExpenseRecord) (int, error) {
	if taxYear <= 0 {
		return 0, fmt.Errorf("tax year is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO expenses (
			id, hash, tax_year, date, category, subcategory,
			amount, description, has_receipt, is_recurring
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	var inserted int
	for i := range expenses {
		e := &expenses[i]
		if err := e.Validate(); err != nil {
			return inserted, fmt.Errorf("invalid expense %q: %w", e.ID, err)
		}

		result, err := stmt.ExecContext(ctx,
			e.ID, e.GenerateHash(), taxYear, e.Date, e.Category, e.Subcategory,
			e.Amount, e.Description, e.HasReceipt, e.IsRecurring)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert expense %q: %w", e.ID, err)
		}
		rows, _ := result.RowsAffected()
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, nil
}

// GetHistory materializes one tax year's ledger, with the deduction total
// summed from the stored records.
func (s *SQLiteStorage) GetHistory(ctx context.Context, taxYear int) (*model.ExpenseHistory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category, subcategory, amount, description, has_receipt, is_recurring
		FROM expenses
		WHERE tax_year = ?
		ORDER BY date
	`, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	history := &model.ExpenseHistory{
		TaxYear:     taxYear,
		LastUpdated: time.Now(),
	}
	for rows.Next() {
		var e model.ExpenseRecord
		var subcategory, description sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Category, &subcategory, &e.Amount,
			&description, &e.HasReceipt, &e.IsRecurring); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Subcategory = subcategory.String
		e.Description = description.String
		history.Expenses = append(history.Expenses, e)
		history.TotalDeductions += e.Amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	return history, nil
}

// ListTaxYears returns the tax years with any expenses on record, descending.
func (s *SQLiteStorage) ListTaxYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT tax_year FROM expenses ORDER BY tax_year DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax years: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan tax year: %w", err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// GetAllHistories materializes every stored tax year, newest first.
func (s *SQLiteStorage) GetAllHistories(ctx context.Context) ([]model.ExpenseHistory, error) {
	years, err := s.ListTaxYears(ctx)
	if err != nil {
		return nil, err
	}

	histories := make([]model.ExpenseHistory, 0, len(years))
	for _, year := range years {
		history, err := s.GetHistory(ctx, year)
		if err != nil {
			return nil, err
		}
		histories = append(histories, *history)
	}
	return histories, nil
}
