package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// AccountingEntry represents a single canonical accounting line from any source.
// Amounts are signed minor-unit integers: debits positive, credits negative.
type AccountingEntry struct {
	Date               time.Time
	ID                 string
	AccountCode        string
	AccountLabel       string
	Currency           string
	DocumentSource     string
	Description        string
	CounterpartAccount string
	Reference          string // Piece number; defines the balancing group
	AmountMinor        int64
}

// Validate checks the invariants every canonical entry must satisfy.
func (e *AccountingEntry) Validate() error {
	if e.AccountCode == "" {
		return fmt.Errorf("account code is required")
	}
	if e.AmountMinor == 0 {
		return fmt.Errorf("amount must be non-zero")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// DuplicateKey creates a hash identifying entries that duplicate each other:
// same account, date, amount and description.
func (e *AccountingEntry) DuplicateKey() string {
	data := fmt.Sprintf("%s:%s:%d:%s",
		e.AccountCode,
		e.Date.Format("2006-01-02"),
		e.AmountMinor,
		e.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Period returns the calendar month bucket the entry falls into, formatted
// as YYYY-MM so lexical order matches chronological order.
func (e *AccountingEntry) Period() string {
	return e.Date.Format("2006-01")
}
