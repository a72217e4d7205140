// Package ofx parses OFX/QFX bank exports into expense records so a year of
// statements can seed the deduction ledger.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/tallyhq/tally/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns expense records. Only debits
// become expenses; credits (income, refunds) are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.ExpenseRecord, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var expenses []model.ExpenseRecord
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			expenses = append(expenses, p.convertTransactions(stmt.BankTranList.Transactions)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			expenses = append(expenses, p.convertTransactions(stmt.BankTranList.Transactions)...)
		}
	}

	slog.Info("Parsed OFX file",
		"expenses", len(expenses),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return expenses, nil
}

// convertTransactions maps OFX debits to expense records.
func (p *Parser) convertTransactions(txns []ofxgo.Transaction) []model.ExpenseRecord {
	var expenses []model.ExpenseRecord
	for _, ofxTx := range txns {
		amount, _ := ofxTx.TrnAmt.Float64()
		// OFX uses negative amounts for debits.
		if amount >= 0 {
			continue
		}

		description := p.extractMerchantName(ofxTx)

		id := string(ofxTx.FiTID)
		if id == "" {
			id = uuid.NewString()
		}

		expenses = append(expenses, model.ExpenseRecord{
			ID:          id,
			Date:        ofxTx.DtPosted.Time,
			Category:    inferCategory(description),
			Amount:      -amount,
			Description: description,
		})
	}
	return expenses
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date fragments some banks prepend
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// categoryHints maps merchant keywords to ledger categories. Unmatched
// descriptions land in "uncategorized" for the user to reclassify.
var categoryHints = []struct {
	category string
	keywords []string
}{
	{"vehicle", []string{"fuel", "petrol", "bp ", "shell", "caltex", "ampol", "parking", "toll"}},
	{"phone_internet", []string{"telstra", "optus", "vodafone", "internet", "mobile"}},
	{"subscriptions", []string{"subscription", "adobe", "microsoft", "github", "linkedin"}},
	{"self_education", []string{"udemy", "coursera", "tafe", "university", "course"}},
	{"donations", []string{"red cross", "salvation", "donation", "charity", "oxfam"}},
	{"tools_equipment", []string{"bunnings", "officeworks", "hardware"}},
	{"work_travel", []string{"qantas", "virgin", "jetstar", "hotel", "airbnb"}},
}

func inferCategory(description string) string {
	lower := strings.ToLower(description)
	for _, hint := range categoryHints {
		for _, keyword := range hint.keywords {
			if strings.Contains(lower, keyword) {
				return hint.category
			}
		}
	}
	return "uncategorized"
}
