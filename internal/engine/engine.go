// Package engine orchestrates a validation run: rule resolution, parallel
// validator execution, aggregation and alert emission.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/report"
	"github.com/zencompta/zencompta-engine/internal/rules"
	"github.com/zencompta/zencompta-engine/internal/validate"
)

// Deps contains all dependencies required by the compliance engine.
type Deps struct {
	// Catalog resolves the rule set for the requested standard.
	Catalog *rules.Catalog
	// Validators are the independent checkers run against each request.
	Validators []validate.Validator
	// Aggregator merges validator results into one report.
	Aggregator *report.Aggregator
	// Emitter derives alerts and recommendations from the report.
	Emitter *report.Emitter
	// Logger receives per-run diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided.
func (d *Deps) Validate() error {
	if d.Catalog == nil {
		return fmt.Errorf("rule catalog dependency is required")
	}
	if len(d.Validators) == 0 {
		return fmt.Errorf("at least one validator is required")
	}
	if d.Aggregator == nil {
		return fmt.Errorf("aggregator dependency is required")
	}
	if d.Emitter == nil {
		return fmt.Errorf("emitter dependency is required")
	}
	return nil
}

// Request describes one validation run.
type Request struct {
	Documents []*model.Document
	Standard  model.Standard
}

// Outcome is the result of one validation run.
type Outcome struct {
	Report *model.ComplianceReport
	Alerts []model.Alert
}

// Engine runs compliance validations.
type Engine struct {
	deps Deps
}

// New creates an engine with the provided dependencies.
func New(deps Deps) (*Engine, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Engine{deps: deps}, nil
}

// DefaultValidators returns the standard set of validators with default
// configuration.
func DefaultValidators() []validate.Validator {
	return []validate.Validator{
		validate.NewStandardValidator(),
		validate.NewCrossDocumentValidator(validate.DefaultCrossDocumentConfig()),
		validate.NewTemporalValidator(validate.DefaultTemporalConfig()),
		validate.NewSuspiciousValidator(validate.DefaultSuspiciousConfig()),
	}
}

type validatorOutcome struct {
	err    *common.ValidatorError
	result validate.Result
}

// Validate runs every validator against the request's documents and
// aggregates the results. An unsupported standard or an empty document set
// fails before any validator runs. A panicking or failing validator degrades
// the report rather than aborting the run; cancellation mid-run returns
// ErrAggregationIncomplete.
func (e *Engine) Validate(ctx context.Context, req Request) (*Outcome, error) {
	if len(req.Documents) == 0 {
		return nil, common.ErrNoDocuments
	}

	ruleSet, err := e.deps.Catalog.ForStandard(req.Standard)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	e.deps.Logger.Info("starting validation run",
		"standard", req.Standard,
		"documents", len(req.Documents),
		"rules", len(ruleSet),
		"validators", len(e.deps.Validators))

	in := validate.Input{
		Documents: req.Documents,
		Rules:     ruleSet,
		Standard:  req.Standard,
	}

	// Outcomes are collected by validator position so finding order, and with
	// it the whole report, is identical across runs over identical input.
	outcomes := make([]validatorOutcome, len(e.deps.Validators))
	var wg sync.WaitGroup
	for i, v := range e.deps.Validators {
		wg.Add(1)
		go func(i int, v validate.Validator) {
			defer wg.Done()
			outcomes[i] = e.runValidator(ctx, v, in)
		}(i, v)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", common.ErrAggregationIncomplete, ctx.Err())
	}

	var results []validate.Result
	var validatorErrs []*common.ValidatorError
	for _, outcome := range outcomes {
		if outcome.err != nil {
			validatorErrs = append(validatorErrs, outcome.err)
			continue
		}
		results = append(results, outcome.result)
	}

	rep := e.deps.Aggregator.Aggregate(req.Standard, len(ruleSet), results, validatorErrs, time.Since(start))
	rep.Recommendations = e.deps.Emitter.Recommendations(rep)
	alerts := e.deps.Emitter.Alerts(rep, rep.GeneratedAt)

	e.deps.Logger.Info("validation run complete",
		"report_id", rep.ID,
		"score", rep.ComplianceScore,
		"findings", len(rep.Findings),
		"alerts", len(alerts),
		"duration", rep.ProcessingTime)

	return &Outcome{Report: rep, Alerts: alerts}, nil
}

// runValidator executes one validator, converting panics and errors into
// ValidatorError so one failing checker never takes the run down.
func (e *Engine) runValidator(ctx context.Context, v validate.Validator, in validate.Input) (out validatorOutcome) {
	defer func() {
		if r := recover(); r != nil {
			e.deps.Logger.Error("validator panicked", "validator", v.Name(), "panic", r)
			out = validatorOutcome{err: &common.ValidatorError{
				Validator: v.Name(),
				Err:       fmt.Errorf("panic: %v", r),
			}}
		}
	}()

	result, err := v.Run(ctx, in)
	if err != nil {
		e.deps.Logger.Warn("validator failed", "validator", v.Name(), "error", err)
		return validatorOutcome{err: &common.ValidatorError{Validator: v.Name(), Err: err}}
	}
	e.deps.Logger.Debug("validator complete",
		"validator", v.Name(),
		"findings", len(result.Findings),
		"checks", result.ChecksEvaluated)
	return validatorOutcome{result: result}
}
