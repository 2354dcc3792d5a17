package model

import (
	"fmt"
	"time"
)

// DocumentType declares what kind of accounting document a file was imported as.
type DocumentType string

const (
	// DocumentTypeBalance represents a trial balance (per-account balances).
	DocumentTypeBalance DocumentType = "balance"
	// DocumentTypeJournal represents a journal of double-entry postings.
	DocumentTypeJournal DocumentType = "journal"
	// DocumentTypeLedger represents a general ledger extract.
	DocumentTypeLedger DocumentType = "ledger"
)

// ParseDocumentType converts a user-supplied string into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypeBalance, DocumentTypeJournal, DocumentTypeLedger:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("unknown document type %q (want balance, journal or ledger)", s)
	}
}

// Document is a named, immutable collection of canonical entries imported for
// one audit project. Re-importing a file creates a new Document rather than
// mutating an existing one.
type Document struct {
	ImportedAt time.Time
	ID         string
	Name       string
	ProjectID  string
	FiscalYear int
	Type       DocumentType
	Entries    []AccountingEntry
}

// Validate checks the document and every entry it carries.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if d.Name == "" {
		return fmt.Errorf("document name is required")
	}
	if _, err := ParseDocumentType(string(d.Type)); err != nil {
		return err
	}
	for i := range d.Entries {
		if err := d.Entries[i].Validate(); err != nil {
			return fmt.Errorf("invalid entry at index %d: %w", i, err)
		}
	}
	return nil
}

// AccountTotals sums signed minor-unit amounts per account code.
func (d *Document) AccountTotals() map[string]int64 {
	totals := make(map[string]int64)
	for i := range d.Entries {
		totals[d.Entries[i].AccountCode] += d.Entries[i].AmountMinor
	}
	return totals
}
