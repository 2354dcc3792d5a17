// Package service defines the interfaces between the engine's collaborators.
package service

import (
	"context"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// Storage provides access to the persistence layer.
type Storage interface {
	// Migrate applies pending schema migrations.
	Migrate(ctx context.Context) error

	// SaveDocument persists a document and its entries.
	SaveDocument(ctx context.Context, doc *model.Document) error
	// GetDocument retrieves a document with its entries.
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	// ListDocuments returns the documents of a project and fiscal year,
	// entries included, ordered by import time.
	ListDocuments(ctx context.Context, projectID string, fiscalYear int) ([]*model.Document, error)

	// SaveReport persists a compliance report and its findings.
	SaveReport(ctx context.Context, report *model.ComplianceReport) error
	// GetReport retrieves a report with its findings.
	GetReport(ctx context.Context, id string) (*model.ComplianceReport, error)
	// ListReports returns report summaries, newest first, without findings.
	ListReports(ctx context.Context, limit int) ([]*model.ComplianceReport, error)

	// SaveAlerts persists a batch of alerts.
	SaveAlerts(ctx context.Context, alerts []model.Alert) error
	// ListOpenAlerts returns unresolved alerts ordered by due date.
	ListOpenAlerts(ctx context.Context) ([]model.Alert, error)

	// Close releases the underlying resources.
	Close() error
}
