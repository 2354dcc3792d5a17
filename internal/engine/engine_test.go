package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/report"
	"github.com/zencompta/zencompta-engine/internal/rules"
	"github.com/zencompta/zencompta-engine/internal/validate"
)

type stubValidator struct {
	run  func(ctx context.Context, in validate.Input) (validate.Result, error)
	name string
}

func (s *stubValidator) Name() string { return s.name }
func (s *stubValidator) Run(ctx context.Context, in validate.Input) (validate.Result, error) {
	return s.run(ctx, in)
}

func testDocs() []*model.Document {
	return []*model.Document{{
		ID:   "doc-1",
		Name: "journal.csv",
		Type: model.DocumentTypeJournal,
		Entries: []model.AccountingEntry{{
			ID:          "e1",
			AccountCode: "411000",
			AmountMinor: 100_000,
			Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Currency:    "XOF",
		}, {
			ID:          "e2",
			AccountCode: "701000",
			AmountMinor: -100_000,
			Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Currency:    "XOF",
		}},
	}}
}

func newTestEngine(t *testing.T, validators ...validate.Validator) *Engine {
	t.Helper()
	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	eng, err := New(Deps{
		Catalog:    rules.NewCatalog(),
		Validators: validators,
		Aggregator: report.NewAggregator(),
		Emitter:    report.NewEmitter(),
	})
	require.NoError(t, err)
	return eng
}

func TestEngineRejectsMissingDeps(t *testing.T) {
	tests := []struct {
		name string
		deps Deps
	}{
		{"no catalog", Deps{Validators: DefaultValidators(), Aggregator: report.NewAggregator(), Emitter: report.NewEmitter()}},
		{"no validators", Deps{Catalog: rules.NewCatalog(), Aggregator: report.NewAggregator(), Emitter: report.NewEmitter()}},
		{"no aggregator", Deps{Catalog: rules.NewCatalog(), Validators: DefaultValidators(), Emitter: report.NewEmitter()}},
		{"no emitter", Deps{Catalog: rules.NewCatalog(), Validators: DefaultValidators(), Aggregator: report.NewAggregator()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.deps)
			require.Error(t, err)
		})
	}
}

func TestEngineValidateFullRun(t *testing.T) {
	eng := newTestEngine(t)

	outcome, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(),
		Standard:  model.StandardSYSCOHADA,
	})
	require.NoError(t, err)
	require.NotNil(t, outcome.Report)
	assert.Equal(t, model.StandardSYSCOHADA, outcome.Report.Standard)
	assert.Positive(t, outcome.Report.ChecksEvaluated)
	assert.Positive(t, outcome.Report.RulesEvaluated)
	assert.NoError(t, outcome.Report.Validate())
}

func TestEngineValidateNoDocuments(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Validate(context.Background(), Request{Standard: model.StandardIFRS})
	require.ErrorIs(t, err, common.ErrNoDocuments)
}

func TestEngineValidateUnsupportedStandardFailsFast(t *testing.T) {
	ran := false
	eng := newTestEngine(t, &stubValidator{
		name: "probe",
		run: func(_ context.Context, _ validate.Input) (validate.Result, error) {
			ran = true
			return validate.Result{}, nil
		},
	})

	_, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(),
		Standard:  model.Standard("lunar_gaap"),
	})
	require.ErrorIs(t, err, common.ErrUnsupportedStandard)
	assert.False(t, ran, "validators must not run for an unsupported standard")
}

func TestEnginePanickingValidatorIsIsolated(t *testing.T) {
	eng := newTestEngine(t,
		&stubValidator{
			name: "panicky",
			run: func(_ context.Context, _ validate.Input) (validate.Result, error) {
				panic("boom")
			},
		},
		&stubValidator{
			name: "healthy",
			run: func(_ context.Context, _ validate.Input) (validate.Result, error) {
				return validate.Result{ChecksEvaluated: 3}, nil
			},
		},
	)

	outcome, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(),
		Standard:  model.StandardIFRS,
	})
	require.NoError(t, err)

	require.Len(t, outcome.Report.ValidatorErrors, 1)
	assert.Contains(t, outcome.Report.ValidatorErrors[0], "panicky")
	assert.Equal(t, 3, outcome.Report.ChecksEvaluated)

	var syntheticFound bool
	for _, finding := range outcome.Report.Findings {
		if finding.Source == "panicky" {
			syntheticFound = true
			assert.Equal(t, model.SeverityInfo, finding.Severity)
		}
	}
	assert.True(t, syntheticFound)
}

func TestEngineFailingValidatorDegradesReport(t *testing.T) {
	eng := newTestEngine(t, &stubValidator{
		name: "flaky",
		run: func(_ context.Context, _ validate.Input) (validate.Result, error) {
			return validate.Result{}, errors.New("storage offline")
		},
	})

	outcome, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(),
		Standard:  model.StandardIFRS,
	})
	require.NoError(t, err)
	require.Len(t, outcome.Report.ValidatorErrors, 1)
	assert.Contains(t, outcome.Report.ValidatorErrors[0], "storage offline")
}

func TestEngineCancellationReturnsIncomplete(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	eng := newTestEngine(t, &stubValidator{
		name: "slow",
		run: func(ctx context.Context, _ validate.Input) (validate.Result, error) {
			close(started)
			select {
			case <-release:
			case <-ctx.Done():
			}
			return validate.Result{}, ctx.Err()
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := eng.Validate(ctx, Request{
		Documents: testDocs(),
		Standard:  model.StandardIFRS,
	})
	require.ErrorIs(t, err, common.ErrAggregationIncomplete)
}

func TestEngineEmitsAlertsForActionableFindings(t *testing.T) {
	eng := newTestEngine(t, &stubValidator{
		name: "stub",
		run: func(_ context.Context, _ validate.Input) (validate.Result, error) {
			return validate.Result{
				Findings: []model.Finding{{
					RuleID:   "IFRS_005",
					Source:   "standard_compliance",
					Message:  "unbalanced",
					Severity: model.SeverityCritical,
					Score:    1.0,
				}},
				ChecksEvaluated: 1,
			}, nil
		},
	})

	outcome, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(),
		Standard:  model.StandardIFRS,
	})
	require.NoError(t, err)
	require.Len(t, outcome.Alerts, 1)
	assert.Equal(t, outcome.Report.ID, outcome.Alerts[0].ReportID)
	assert.NotEmpty(t, outcome.Report.Recommendations)
}

func TestEngineDeterministicOverIdenticalInput(t *testing.T) {
	eng := newTestEngine(t)

	first, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(), Standard: model.StandardSYSCOHADA,
	})
	require.NoError(t, err)
	second, err := eng.Validate(context.Background(), Request{
		Documents: testDocs(), Standard: model.StandardSYSCOHADA,
	})
	require.NoError(t, err)

	assert.Equal(t, first.Report.ComplianceScore, second.Report.ComplianceScore)
	assert.Equal(t, first.Report.SeverityDistribution, second.Report.SeverityDistribution)
	assert.Equal(t, len(first.Report.Findings), len(second.Report.Findings))
}

func TestEngineCancellationError(t *testing.T) {
	assert.True(t, common.IsRetryable(common.ErrAggregationIncomplete))
	assert.False(t, common.IsRetryable(common.ErrUnsupportedStandard))
}
