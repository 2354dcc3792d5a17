package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencompta/zencompta-engine/internal/model"
)

func TestCrossDocumentRequiresTwoDocuments(t *testing.T) {
	v := NewCrossDocumentValidator(DefaultCrossDocumentConfig())

	result, err := v.Run(context.Background(), Input{
		Documents: []*model.Document{journal("only", entry("e1", "411", 10_000, march(1)))},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Zero(t, result.ChecksEvaluated)
}

func TestCrossDocumentDetectsDiscrepancy(t *testing.T) {
	balance := &model.Document{
		ID:   "bal",
		Name: "balance.csv",
		Type: model.DocumentTypeBalance,
		Entries: []model.AccountingEntry{
			entry("b1", "512", 100_000, march(31)),
			entry("b2", "411", 50_000, march(31)),
		},
	}
	ledger := journal("ledger",
		entry("l1", "512", 60_000, march(1)),
		entry("l2", "512", 39_000, march(2)),
		entry("l3", "411", 50_000, march(3)),
	)

	v := NewCrossDocumentValidator(DefaultCrossDocumentConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{balance, ledger}})
	require.NoError(t, err)

	// 512 differs by 1000 minor units, 411 matches.
	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "cross_document", finding.Source)
	assert.Equal(t, model.SeverityError, finding.Severity)
	assert.Contains(t, finding.Message, "512")
	assert.ElementsMatch(t, []string{"b1", "l1", "l2"}, finding.AffectedEntryIDs)
	assert.InDelta(t, 1000.0/100_000.0, finding.Score, 1e-9)
	assert.Equal(t, 2, result.ChecksEvaluated)
}

func TestCrossDocumentTolerance(t *testing.T) {
	docA := journal("a", entry("a1", "512", 100_000, march(1)))
	docB := journal("b", entry("b1", "512", 99_500, march(1)))

	strict := NewCrossDocumentValidator(CrossDocumentConfig{ToleranceMinor: 0})
	result, err := strict.Run(context.Background(), Input{Documents: []*model.Document{docA, docB}})
	require.NoError(t, err)
	assert.Len(t, result.Findings, 1)

	lenient := NewCrossDocumentValidator(CrossDocumentConfig{ToleranceMinor: 1_000})
	result, err = lenient.Run(context.Background(), Input{Documents: []*model.Document{docA, docB}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 1, result.ChecksEvaluated)
}

func TestCrossDocumentMaxPairwiseDiscrepancy(t *testing.T) {
	docs := []*model.Document{
		journal("a", entry("a1", "512", 100_000, march(1))),
		journal("b", entry("b1", "512", 98_000, march(1))),
		journal("c", entry("c1", "512", 97_000, march(1))),
	}

	v := NewCrossDocumentValidator(DefaultCrossDocumentConfig())
	result, err := v.Run(context.Background(), Input{Documents: docs})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	// Worst pair is a vs c: 3000 minor units.
	assert.Contains(t, result.Findings[0].Message, "3000")
	assert.ElementsMatch(t, []string{"a1", "c1"}, result.Findings[0].AffectedEntryIDs)
}

func TestDiscrepancyScore(t *testing.T) {
	tests := []struct {
		name        string
		discrepancy int64
		totalA      int64
		totalB      int64
		want        float64
	}{
		{"small relative gap", 1_000, 100_000, 99_000, 0.01},
		{"both zero totals", 500, 0, 0, 1.0},
		{"negative totals use magnitude", 10_000, -100_000, -90_000, 0.1},
		{"capped at one", 300_000, 100_000, -200_000, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, discrepancyScore(tt.discrepancy, tt.totalA, tt.totalB), 1e-9)
		})
	}
}
