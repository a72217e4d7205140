package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// ExpenseRecord represents a single categorized expense in a tax year's ledger.
// Category and subcategory are free text; detection rules match them by
// case-insensitive substring against keyword lists.
type ExpenseRecord struct {
	Date        time.Time `json:"date"`
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	Amount      float64   `json:"amount"`
	HasReceipt  bool      `json:"has_receipt"`
	IsRecurring bool      `json:"is_recurring,omitempty"`
}

// GenerateHash creates a unique hash for duplicate detection during import.
func (e *ExpenseRecord) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		e.Date.Format("2006-01-02"),
		e.Amount,
		e.Category,
		e.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Validate ensures the expense record has valid data.
func (e *ExpenseRecord) Validate() error {
	if e.Category == "" {
		return fmt.Errorf("category is required")
	}
	if e.Amount < 0 {
		return fmt.Errorf("amount must not be negative, got %.2f", e.Amount)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// ExpenseHistory is one tax year's expense ledger. TotalDeductions is trusted
// as supplied by the caller; the engines do not recompute it from Expenses.
type ExpenseHistory struct {
	LastUpdated     time.Time       `json:"last_updated"`
	Expenses        []ExpenseRecord `json:"expenses"`
	TaxYear         int             `json:"tax_year"`
	TotalDeductions float64         `json:"total_deductions"`
}

// Validate ensures the history has valid data.
func (h *ExpenseHistory) Validate() error {
	if h.TaxYear <= 0 {
		return fmt.Errorf("tax year is required")
	}
	for i := range h.Expenses {
		if err := h.Expenses[i].Validate(); err != nil {
			return fmt.Errorf("invalid expense at index %d: %w", i, err)
		}
	}
	return nil
}
