package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStandard(t *testing.T) {
	tests := []struct {
		in      string
		want    Standard
		wantErr bool
	}{
		{in: "ifrs", want: StandardIFRS},
		{in: " SYSCOHADA ", want: StandardSYSCOHADA},
		{in: "US_GAAP", want: StandardUSGAAP},
		{in: "pcg", want: StandardPCG},
		{in: "syscebnl", want: StandardSYSCEBNL},
		{in: "ias", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStandard(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityRankOrdersCriticalFirst(t *testing.T) {
	assert.Less(t, SeverityCritical.Rank(), SeverityError.Rank())
	assert.Less(t, SeverityError.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityInfo.Rank())
}

func TestSeverityWeights(t *testing.T) {
	assert.Equal(t, 1.0, SeverityCritical.Weight())
	assert.Equal(t, 0.6, SeverityError.Weight())
	assert.Equal(t, 0.3, SeverityWarning.Weight())
	assert.Equal(t, 0.05, SeverityInfo.Weight())
	assert.Zero(t, Severity("nonsense").Weight())
}

func TestDuplicateKey(t *testing.T) {
	base := AccountingEntry{
		ID:          "e1",
		AccountCode: "606",
		AmountMinor: 45_000,
		Date:        time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		Description: "fournitures",
	}

	same := base
	same.ID = "e2"
	same.Date = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) // same day, different hour
	assert.Equal(t, base.DuplicateKey(), same.DuplicateKey())

	different := base
	different.AmountMinor = 45_001
	assert.NotEqual(t, base.DuplicateKey(), different.DuplicateKey())
}

func TestEntryPeriod(t *testing.T) {
	entry := AccountingEntry{Date: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-11", entry.Period())
}

func TestDocumentValidate(t *testing.T) {
	valid := Document{
		ID:   "doc-1",
		Name: "journal.csv",
		Type: DocumentTypeJournal,
		Entries: []AccountingEntry{{
			ID:          "e1",
			AccountCode: "411",
			AmountMinor: 100,
			Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, valid.Validate())

	badType := valid
	badType.Type = DocumentType("spreadsheet")
	require.Error(t, badType.Validate())

	badEntry := valid
	badEntry.Entries = []AccountingEntry{{ID: "e1", AccountCode: "", AmountMinor: 100}}
	require.Error(t, badEntry.Validate())
}

func TestAccountTotals(t *testing.T) {
	doc := Document{
		Entries: []AccountingEntry{
			{AccountCode: "512", AmountMinor: 100},
			{AccountCode: "512", AmountMinor: -40},
			{AccountCode: "701", AmountMinor: -60},
		},
	}
	assert.Equal(t, map[string]int64{"512": 60, "701": -60}, doc.AccountTotals())
}

func TestAlertOverdue(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	alert := Alert{DueDate: due}
	assert.False(t, alert.Overdue(due))
	assert.True(t, alert.Overdue(due.Add(time.Hour)))
}

func TestReportValidateBounds(t *testing.T) {
	report := ComplianceReport{
		ID:              "r1",
		Standard:        StandardIFRS,
		ComplianceScore: 1.2,
	}
	require.Error(t, report.Validate())

	report.ComplianceScore = 0.9
	require.NoError(t, report.Validate())
}
