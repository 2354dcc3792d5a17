package validate

import (
	"context"

	"github.com/zencompta/zencompta-engine/internal/rules"
)

// StandardValidator evaluates the selected standard's rule set against every
// document. Rules are independent: evaluation order never affects the result
// set, and no rule sees another's output.
type StandardValidator struct{}

// NewStandardValidator creates a standard-compliance validator.
func NewStandardValidator() *StandardValidator {
	return &StandardValidator{}
}

// Name implements Validator.
func (v *StandardValidator) Name() string {
	return "standard_compliance"
}

// Run implements Validator. Cancellation is honored between rules, never
// mid-rule.
func (v *StandardValidator) Run(ctx context.Context, in Input) (Result, error) {
	var result Result
	for _, doc := range in.Documents {
		for _, rule := range in.Rules {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			default:
			}
			result.Findings = append(result.Findings, rules.Evaluate(rule, doc)...)
			result.ChecksEvaluated++
		}
	}
	return result, nil
}
