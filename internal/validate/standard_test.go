package validate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencompta/zencompta-engine/internal/model"
	"github.com/zencompta/zencompta-engine/internal/rules"
)

func entry(id, account string, amount int64, date time.Time) model.AccountingEntry {
	return model.AccountingEntry{
		ID:          id,
		AccountCode: account,
		AmountMinor: amount,
		Date:        date,
		Currency:    "XOF",
	}
}

func journal(name string, entries ...model.AccountingEntry) *model.Document {
	return &model.Document{
		ID:      name,
		Name:    name + ".csv",
		Type:    model.DocumentTypeJournal,
		Entries: entries,
	}
}

func march(day int) time.Time {
	return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestStandardValidatorCountsChecks(t *testing.T) {
	catalog := rules.NewCatalog()
	ruleSet, err := catalog.ForStandard(model.StandardSYSCOHADA)
	require.NoError(t, err)

	docs := []*model.Document{
		journal("a", entry("e1", "411000", 10_000, march(1))),
		journal("b", entry("e2", "701000", -10_000, march(1))),
	}

	v := NewStandardValidator()
	result, err := v.Run(context.Background(), Input{
		Documents: docs,
		Rules:     ruleSet,
		Standard:  model.StandardSYSCOHADA,
	})
	require.NoError(t, err)
	assert.Equal(t, len(docs)*len(ruleSet), result.ChecksEvaluated)
}

func TestStandardValidatorDeterministic(t *testing.T) {
	catalog := rules.NewCatalog()
	ruleSet, err := catalog.ForStandard(model.StandardIFRS)
	require.NoError(t, err)

	docs := []*model.Document{
		journal("a",
			entry("e1", "512000", 100_000, march(1)),
			entry("e2", "912000", -100_000, march(1)),
		),
	}
	in := Input{Documents: docs, Rules: ruleSet, Standard: model.StandardIFRS}

	v := NewStandardValidator()
	first, err := v.Run(context.Background(), in)
	require.NoError(t, err)
	second, err := v.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStandardValidatorHonorsCancellation(t *testing.T) {
	catalog := rules.NewCatalog()
	ruleSet, err := catalog.ForStandard(model.StandardIFRS)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := NewStandardValidator()
	_, err = v.Run(ctx, Input{
		Documents: []*model.Document{journal("a", entry("e1", "411", 10_000, march(1)))},
		Rules:     ruleSet,
		Standard:  model.StandardIFRS,
	})
	require.ErrorIs(t, err, context.Canceled)
}
