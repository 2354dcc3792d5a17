package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
)

// SaveDocument persists a document and its entries in one transaction.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, project_id, fiscal_year, type, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.ProjectID, doc.FiscalYear, string(doc.Type), doc.ImportedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, document_id, date, account_code, account_label,
			currency, description, counterpart_account, reference, amount_minor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range doc.Entries {
		entry := &doc.Entries[i]
		_, err = stmt.ExecContext(ctx,
			entry.ID, doc.ID, entry.Date, entry.AccountCode, entry.AccountLabel,
			entry.Currency, entry.Description, entry.CounterpartAccount,
			entry.Reference, entry.AmountMinor)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", entry.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document with its entries.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	doc := &model.Document{}
	var docType string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, project_id, fiscal_year, type, imported_at
		FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Name, &doc.ProjectID, &doc.FiscalYear, &docType, &doc.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	doc.Type = model.DocumentType(docType)

	doc.Entries, err = s.loadEntries(ctx, doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns the documents of one project and fiscal year, entries
// included, ordered by import time.
func (s *SQLiteStorage) ListDocuments(ctx context.Context, projectID string, fiscalYear int) ([]*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, project_id, fiscal_year, type, imported_at
		FROM documents
		WHERE project_id = ? AND fiscal_year = ?
		ORDER BY imported_at, id`, projectID, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*model.Document
	for rows.Next() {
		doc := &model.Document{}
		var docType string
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.ProjectID, &doc.FiscalYear, &docType, &doc.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Type = model.DocumentType(docType)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	for _, doc := range docs {
		doc.Entries, err = s.loadEntries(ctx, doc)
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *SQLiteStorage) loadEntries(ctx context.Context, doc *model.Document) ([]model.AccountingEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, account_code, account_label, currency,
			description, counterpart_account, reference, amount_minor
		FROM entries WHERE document_id = ? ORDER BY rowid`, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AccountingEntry
	for rows.Next() {
		var entry model.AccountingEntry
		err := rows.Scan(&entry.ID, &entry.Date, &entry.AccountCode, &entry.AccountLabel,
			&entry.Currency, &entry.Description, &entry.CounterpartAccount,
			&entry.Reference, &entry.AmountMinor)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.DocumentSource = doc.Name
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
