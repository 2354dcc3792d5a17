// Package validate implements the four validator families of the compliance
// engine. Validators are pure functions over immutable input and safe to run
// in parallel.
package validate

import (
	"context"

	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/rules"
)

// Input carries one validation run's immutable data. Rules are pre-resolved
// for the selected standard so an unsupported standard fails before fan-out.
type Input struct {
	Documents []*model.Document
	Rules     []rules.Rule
	Standard  model.Standard
}

// Result is one validator's contribution to the aggregated report.
// ChecksEvaluated counts the individual checks performed so the aggregator can
// normalize violation density by work actually done.
type Result struct {
	Findings        []model.Finding
	ChecksEvaluated int
}

// Validator is a single independent checker producing findings against the
// canonical data.
type Validator interface {
	Name() string
	Run(ctx context.Context, in Input) (Result, error)
}
