package validate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// monthlySeries builds one entry per month on the given account.
func monthlySeries(account string, amounts ...int64) *model.Document {
	doc := &model.Document{ID: "doc", Name: "series.csv", Type: model.DocumentTypeJournal}
	for i, amount := range amounts {
		doc.Entries = append(doc.Entries, model.AccountingEntry{
			ID:          fmt.Sprintf("%s-m%02d", account, i+1),
			AccountCode: account,
			AmountMinor: amount,
			Date:        time.Date(2025, time.Month(i+1), 15, 0, 0, 0, 0, time.UTC),
			Currency:    "XOF",
		})
	}
	return doc
}

func TestTemporalDetectsSpike(t *testing.T) {
	// Stable activity around 100k, then a 10x spike in the last month.
	doc := monthlySeries("601",
		100_000, 104_000, 102_000, 102_000, 101_000, 1_000_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "temporal", finding.Source)
	assert.Contains(t, finding.Message, "2025-06")
	assert.Equal(t, []string{"601-m06"}, finding.AffectedEntryIDs)
	assert.Equal(t, model.SeverityError, finding.Severity)
	assert.Equal(t, 1.0, finding.Score)
}

func TestTemporalFirstTwoPeriodsNeverFlagged(t *testing.T) {
	// Huge swing between the first two months: no baseline yet, no finding.
	doc := monthlySeries("601", 1_000, 900_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Zero(t, result.ChecksEvaluated)
}

func TestTemporalStableSeriesClean(t *testing.T) {
	doc := monthlySeries("601",
		100_000, 100_000, 100_000, 100_000, 100_000, 100_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 3, result.ChecksEvaluated)
}

func TestTemporalNoisyBaselineFlagsOnlySpike(t *testing.T) {
	// Activity wobbling within 5% of 100k for six months, then a 9x spike.
	// The in-noise wiggles must not flag; the spike must, exactly once.
	doc := monthlySeries("601",
		100_000, 105_000, 95_000, 102_000, 98_000, 100_000, 900_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Contains(t, finding.Message, "2025-07")
	assert.Equal(t, []string{"601-m07"}, finding.AffectedEntryIDs)
	assert.Equal(t, model.SeverityError, finding.Severity)
	assert.Equal(t, 1.0, finding.Score)
}

func TestTemporalFlatBaselineIgnoresTinyChange(t *testing.T) {
	// Identical months then a one-minor-unit change: below the relative
	// deviation floor, so the undefined z-score must not peg a finding at 1.
	doc := monthlySeries("601", 100_000, 100_000, 100_000, 100_001)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 1, result.ChecksEvaluated)
}

func TestTemporalFlatBaselineThenLargeChange(t *testing.T) {
	// Identical months then a doubling: z-score is undefined, score pegs at 1.
	doc := monthlySeries("601", 100_000, 100_000, 100_000, 200_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, 1.0, result.Findings[0].Score)
	assert.Equal(t, model.SeverityError, result.Findings[0].Severity)
}

func TestTemporalChecksCountPerAccount(t *testing.T) {
	docA := monthlySeries("601", 100_000, 100_000, 100_000, 100_000, 100_000)
	docB := monthlySeries("602", 50_000, 50_000, 50_000, 50_000)

	v := NewTemporalValidator(DefaultTemporalConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{docA, docB}})
	require.NoError(t, err)
	// Account 601 tests months 4 and 5, account 602 tests month 4.
	assert.Equal(t, 3, result.ChecksEvaluated)
}
