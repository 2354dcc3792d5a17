// Package report turns validator output into compliance reports, alerts and
// recommendations, and renders them for the terminal.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/validate"
)

// Aggregator merges per-validator results into a single report.
type Aggregator struct{}

// NewAggregator creates an aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate combines validator results into a compliance report. Validator
// failures degrade the report instead of aborting it: each failed validator
// contributes a synthetic info finding and its error string, so the reader
// knows which checks did not run.
func (a *Aggregator) Aggregate(standard model.Standard, rulesEvaluated int, results []validate.Result, validatorErrs []*common.ValidatorError, elapsed time.Duration) *model.ComplianceReport {
	report := &model.ComplianceReport{
		GeneratedAt:          time.Now().UTC(),
		ID:                   uuid.New().String(),
		Standard:             standard,
		SeverityDistribution: make(map[model.Severity]int),
		RulesEvaluated:       rulesEvaluated,
		ProcessingTime:       elapsed,
	}

	for _, result := range results {
		report.Findings = append(report.Findings, result.Findings...)
		report.ChecksEvaluated += result.ChecksEvaluated
	}

	for _, verr := range validatorErrs {
		report.ValidatorErrors = append(report.ValidatorErrors, verr.Error())
		report.Findings = append(report.Findings, model.Finding{
			Source:   verr.Validator,
			Category: "validator_failure",
			Severity: model.SeverityInfo,
			Score:    1.0,
			Message:  fmt.Sprintf("validator %s did not complete: %v", verr.Validator, verr.Err),
		})
	}

	sortFindings(report.Findings)

	for _, finding := range report.Findings {
		report.SeverityDistribution[finding.Severity]++
	}
	report.ComplianceScore = complianceScore(report.Findings, report.ChecksEvaluated)

	return report
}

// sortFindings orders findings most severe first, then by descending score.
// The sort is stable so validators' internal ordering breaks remaining ties,
// keeping runs over identical input byte-identical.
func sortFindings(findings []model.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := findings[i].Severity.Rank(), findings[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		return findings[i].Score > findings[j].Score
	})
}

// complianceScore maps the weighted violation density onto [0, 1]. A clean
// run scores 1.0; density is normalized by the number of checks actually
// performed so large datasets are not penalized for their size.
func complianceScore(findings []model.Finding, checksEvaluated int) float64 {
	if len(findings) == 0 {
		return 1.0
	}
	if checksEvaluated <= 0 {
		checksEvaluated = len(findings)
	}

	var weighted float64
	for _, finding := range findings {
		weighted += finding.Severity.Weight()
	}

	score := 1.0 - weighted/float64(checksEvaluated)
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
