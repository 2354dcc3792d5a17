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

// accountEntries builds n entries on one account with varied non-round amounts.
func accountEntries(account string, n int, roundCount int) []model.AccountingEntry {
	entries := make([]model.AccountingEntry, 0, n)
	for i := 0; i < n; i++ {
		amount := int64(123_457 + i*7919) // never a multiple of 100 000
		if i < roundCount {
			amount = int64((i + 1)) * 100_000
		}
		entries = append(entries, model.AccountingEntry{
			ID:          fmt.Sprintf("%s-%03d", account, i),
			AccountCode: account,
			AmountMinor: amount,
			Date:        time.Date(2025, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC),
			Description: fmt.Sprintf("operation %d", i),
			Currency:    "XOF",
		})
	}
	return entries
}

func suspiciousDoc(entries ...[]model.AccountingEntry) *model.Document {
	doc := &model.Document{ID: "doc", Name: "doc.csv", Type: model.DocumentTypeJournal}
	for _, batch := range entries {
		doc.Entries = append(doc.Entries, batch...)
	}
	return doc
}

func TestSuspiciousRoundAmountConcentration(t *testing.T) {
	// 40 of 50 entries are round multiples of 1000 major units: well above
	// the 15% threshold.
	doc := suspiciousDoc(accountEntries("512", 50, 40))

	v := NewSuspiciousValidator(DefaultSuspiciousConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "suspicious_entries", finding.Source)
	assert.Equal(t, "statistical", finding.Category)
	assert.Contains(t, finding.Message, "round amounts")
	assert.GreaterOrEqual(t, finding.Score, 0.5)
	assert.Len(t, finding.AffectedEntryIDs, 50)
}

func TestSuspiciousFewRoundAmountsClean(t *testing.T) {
	// 5 of 50 round entries sits at 10%, under the threshold; the remaining
	// amounts follow no flagged digit pattern strongly enough on 50 samples
	// to cross the minimum score.
	doc := suspiciousDoc(accountEntries("512", 50, 5))

	v := NewSuspiciousValidator(DefaultSuspiciousConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	for _, finding := range result.Findings {
		assert.NotContains(t, finding.Message, "round amounts")
	}
}

func TestSuspiciousRoundAmountsJustOverThreshold(t *testing.T) {
	// 8 of 48 entries (16.7%) are round: barely past the 15% threshold, and
	// under the 50-entry floor for the leading-digit test. A signal past its
	// detection threshold must clear the minimum score and be reported.
	doc := suspiciousDoc(accountEntries("512", 48, 8))

	v := NewSuspiciousValidator(DefaultSuspiciousConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	finding := result.Findings[0]
	assert.Equal(t, "statistical", finding.Category)
	assert.Contains(t, finding.Message, "round amounts")
	assert.GreaterOrEqual(t, finding.Score, 0.5)
	// raw = 0.5 * (8/48) / 0.15; score = 0.5 + (raw-0.5) * 0.8
	assert.InDelta(t, 0.5444, finding.Score, 1e-3)
	assert.Len(t, finding.AffectedEntryIDs, 48)
}

func TestSuspiciousDuplicateEntries(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dup1 := model.AccountingEntry{
		ID: "dup-1", AccountCode: "606", AmountMinor: 45_000,
		Date: date, Description: "fournitures bureau", Currency: "XOF",
	}
	dup2 := dup1
	dup2.ID = "dup-2"
	other := model.AccountingEntry{
		ID: "other", AccountCode: "606", AmountMinor: 46_000,
		Date: date, Description: "fournitures bureau", Currency: "XOF",
	}
	doc := suspiciousDoc([]model.AccountingEntry{dup1, dup2, other})

	v := NewSuspiciousValidator(DefaultSuspiciousConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	var duplicates []model.Finding
	for _, finding := range result.Findings {
		if finding.Category == "duplicate" {
			duplicates = append(duplicates, finding)
		}
	}
	require.Len(t, duplicates, 1)
	assert.ElementsMatch(t, []string{"dup-1", "dup-2"}, duplicates[0].AffectedEntryIDs)
	assert.InDelta(t, 0.8, duplicates[0].Score, 1e-9)
}

func TestSuspiciousDuplicateScoreGrowsWithGroupSize(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	var entries []model.AccountingEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, model.AccountingEntry{
			ID: fmt.Sprintf("dup-%d", i), AccountCode: "606", AmountMinor: 45_000,
			Date: date, Description: "loyer mars", Currency: "XOF",
		})
	}
	doc := suspiciousDoc(entries)

	v := NewSuspiciousValidator(DefaultSuspiciousConfig())
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)

	require.Len(t, result.Findings, 1)
	// 0.8 base plus 0.1 per extra occurrence beyond the pair, capped at 1.
	assert.InDelta(t, 1.0, result.Findings[0].Score, 1e-9)
}

func TestSuspiciousMinScoreSuppression(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	dup1 := model.AccountingEntry{
		ID: "dup-1", AccountCode: "606", AmountMinor: 45_000,
		Date: date, Description: "abonnement", Currency: "XOF",
	}
	dup2 := dup1
	dup2.ID = "dup-2"
	doc := suspiciousDoc([]model.AccountingEntry{dup1, dup2})

	config := DefaultSuspiciousConfig()
	config.MinScore = 0.9
	v := NewSuspiciousValidator(config)
	result, err := v.Run(context.Background(), Input{Documents: []*model.Document{doc}})
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
}

func TestLeadingDigit(t *testing.T) {
	tests := []struct {
		amount int64
		want   int
	}{
		{0, 0},
		{-5, 0},
		{7, 7},
		{123_456, 1},
		{987_654_321, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leadingDigit(tt.amount))
	}
}
