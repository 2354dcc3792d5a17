package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Documents and entries",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS documents (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					project_id TEXT NOT NULL,
					fiscal_year INTEGER NOT NULL,
					type TEXT NOT NULL,
					imported_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_documents_project ON documents(project_id, fiscal_year)`,

				`CREATE TABLE IF NOT EXISTS entries (
					id TEXT PRIMARY KEY,
					document_id TEXT NOT NULL,
					date DATETIME NOT NULL,
					account_code TEXT NOT NULL,
					account_label TEXT,
					currency TEXT NOT NULL,
					description TEXT,
					counterpart_account TEXT,
					reference TEXT,
					amount_minor INTEGER NOT NULL,
					FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_entries_document ON entries(document_id)`,
				`CREATE INDEX idx_entries_account ON entries(account_code)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Reports and findings",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS reports (
					id TEXT PRIMARY KEY,
					standard TEXT NOT NULL,
					generated_at DATETIME NOT NULL,
					compliance_score REAL NOT NULL,
					rules_evaluated INTEGER NOT NULL,
					checks_evaluated INTEGER NOT NULL,
					processing_time_ns INTEGER NOT NULL,
					recommendations TEXT,
					validator_errors TEXT
				)`,
				`CREATE INDEX idx_reports_generated ON reports(generated_at)`,

				`CREATE TABLE IF NOT EXISTS findings (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					report_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					rule_id TEXT,
					source TEXT NOT NULL,
					category TEXT,
					message TEXT NOT NULL,
					severity TEXT NOT NULL,
					score REAL NOT NULL,
					affected_entry_ids TEXT,
					remediation TEXT,
					FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_findings_report ON findings(report_id)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Alerts",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS alerts (
					id TEXT PRIMARY KEY,
					report_id TEXT NOT NULL,
					rule_id TEXT,
					title TEXT NOT NULL,
					message TEXT NOT NULL,
					severity TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					due_date DATETIME NOT NULL,
					resolved_at DATETIME,
					FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_alerts_due ON alerts(due_date)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
