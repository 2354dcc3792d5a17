package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
)

// SaveReport persists a compliance report and its findings in one transaction.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report *model.ComplianceReport) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	if err := report.Validate(); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}

	recommendations, err := json.Marshal(report.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	validatorErrors, err := json.Marshal(report.ValidatorErrors)
	if err != nil {
		return fmt.Errorf("failed to marshal validator errors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, standard, generated_at, compliance_score,
			rules_evaluated, checks_evaluated, processing_time_ns,
			recommendations, validator_errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, string(report.Standard), report.GeneratedAt, report.ComplianceScore,
		report.RulesEvaluated, report.ChecksEvaluated, int64(report.ProcessingTime),
		string(recommendations), string(validatorErrors))
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO findings (report_id, position, rule_id, source, category,
			message, severity, score, affected_entry_ids, remediation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range report.Findings {
		finding := &report.Findings[i]
		entryIDs, err := json.Marshal(finding.AffectedEntryIDs)
		if err != nil {
			return fmt.Errorf("failed to marshal entry IDs: %w", err)
		}
		remediation, err := json.Marshal(finding.Remediation)
		if err != nil {
			return fmt.Errorf("failed to marshal remediation: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			report.ID, i, finding.RuleID, finding.Source, finding.Category,
			finding.Message, string(finding.Severity), finding.Score,
			string(entryIDs), string(remediation))
		if err != nil {
			return fmt.Errorf("failed to insert finding %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}
	return nil
}

// GetReport retrieves a report with its findings.
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*model.ComplianceReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	report, err := s.scanReport(s.db.QueryRowContext(ctx, `
		SELECT id, standard, generated_at, compliance_score, rules_evaluated,
			checks_evaluated, processing_time_ns, recommendations, validator_errors
		FROM reports WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	report.Findings, err = s.loadFindings(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	report.SeverityDistribution = make(map[model.Severity]int)
	for _, finding := range report.Findings {
		report.SeverityDistribution[finding.Severity]++
	}
	return report, nil
}

// ListReports returns report summaries, newest first, without findings.
func (s *SQLiteStorage) ListReports(ctx context.Context, limit int) ([]*model.ComplianceReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, standard, generated_at, compliance_score, rules_evaluated,
			checks_evaluated, processing_time_ns, recommendations, validator_errors
		FROM reports ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reports []*model.ComplianceReport
	for rows.Next() {
		report, err := s.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStorage) scanReport(row rowScanner) (*model.ComplianceReport, error) {
	report := &model.ComplianceReport{}
	var standard, recommendations, validatorErrors string
	var processingNs int64
	err := row.Scan(&report.ID, &standard, &report.GeneratedAt, &report.ComplianceScore,
		&report.RulesEvaluated, &report.ChecksEvaluated, &processingNs,
		&recommendations, &validatorErrors)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	report.Standard = model.Standard(standard)
	report.ProcessingTime = time.Duration(processingNs)
	if err := json.Unmarshal([]byte(recommendations), &report.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	if err := json.Unmarshal([]byte(validatorErrors), &report.ValidatorErrors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal validator errors: %w", err)
	}
	return report, nil
}

func (s *SQLiteStorage) loadFindings(ctx context.Context, reportID string) ([]model.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rule_id, source, category, message, severity, score,
			affected_entry_ids, remediation
		FROM findings WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []model.Finding
	for rows.Next() {
		var finding model.Finding
		var severity, entryIDs, remediation string
		err := rows.Scan(&finding.RuleID, &finding.Source, &finding.Category,
			&finding.Message, &severity, &finding.Score, &entryIDs, &remediation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		finding.Severity = model.Severity(severity)
		if err := json.Unmarshal([]byte(entryIDs), &finding.AffectedEntryIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry IDs: %w", err)
		}
		if err := json.Unmarshal([]byte(remediation), &finding.Remediation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal remediation: %w", err)
		}
		findings = append(findings, finding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate findings: %w", err)
	}
	return findings, nil
}
