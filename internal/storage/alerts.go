package storage

import (
	"context"
	"fmt"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// SaveAlerts persists a batch of alerts in one transaction.
func (s *SQLiteStorage) SaveAlerts(ctx context.Context, alerts []model.Alert) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alerts (id, report_id, rule_id, title, message, severity,
			created_at, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare alert insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range alerts {
		alert := &alerts[i]
		_, err = stmt.ExecContext(ctx,
			alert.ID, alert.ReportID, alert.RuleID, alert.Title, alert.Message,
			string(alert.Severity), alert.CreatedAt, alert.DueDate)
		if err != nil {
			return fmt.Errorf("failed to insert alert %s: %w", alert.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit alerts: %w", err)
	}
	return nil
}

// ListOpenAlerts returns unresolved alerts ordered by due date, most urgent
// first.
func (s *SQLiteStorage) ListOpenAlerts(ctx context.Context) ([]model.Alert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, report_id, rule_id, title, message, severity, created_at, due_date
		FROM alerts WHERE resolved_at IS NULL
		ORDER BY due_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var alerts []model.Alert
	for rows.Next() {
		var alert model.Alert
		var severity string
		err := rows.Scan(&alert.ID, &alert.ReportID, &alert.RuleID, &alert.Title,
			&alert.Message, &severity, &alert.CreatedAt, &alert.DueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alert.Severity = model.Severity(severity)
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}
