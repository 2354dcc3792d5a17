package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zencompta/zencompta-engine/internal/model"
)

func TestNormalizeColumnAliases(t *testing.T) {
	tests := []struct {
		row         RawRow
		name        string
		wantAccount string
		wantAmount  int64
	}{
		{
			name: "french journal headers",
			row: RawRow{
				"Numéro de compte": "411000",
				"Date écriture":    "2025-03-15",
				"Débit":            "1500.00",
				"Libellé écriture": "Facture client",
			},
			wantAccount: "411000",
			wantAmount:  150000,
		},
		{
			name: "english headers",
			row: RawRow{
				"Account": "701",
				"Date":    "2025-03-15",
				"Amount":  "-250.00",
			},
			wantAccount: "701",
			wantAmount:  -25000,
		},
		{
			name: "fec headers",
			row: RawRow{
				"CompteNum":    "60110000",
				"EcritureDate": "20250315",
				"Debit":        "99.99",
			},
			wantAccount: "60110000",
			wantAmount:  9999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings, err := Normalize([]RawRow{tt.row}, "test.csv", model.DocumentTypeJournal, DefaultOptions())
			require.NoError(t, err)
			require.Empty(t, warnings)
			require.Len(t, doc.Entries, 1)
			assert.Equal(t, tt.wantAccount, doc.Entries[0].AccountCode)
			assert.Equal(t, tt.wantAmount, doc.Entries[0].AmountMinor)
		})
	}
}

func TestNormalizeAmountLocales(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int64
	}{
		{"plain decimal", "1234.56", 123456},
		{"french thousands and comma", "1 234,56", 123456},
		{"us thousands", "1,234.56", 123456},
		{"comma decimal", "99,95", 9995},
		{"negative", "-500.00", -50000},
		{"integer", "1000000", 100000000},
		{"thousands commas only", "1,234,567", 123456700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmountMinor(tt.raw, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDebitCreditNetting(t *testing.T) {
	rows := []RawRow{
		{"compte": "411", "date": "2025-01-10", "debit": "100.00", "credit": ""},
		{"compte": "701", "date": "2025-01-10", "debit": "", "credit": "100.00"},
	}

	doc, warnings, err := Normalize(rows, "journal.csv", model.DocumentTypeJournal, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, int64(10000), doc.Entries[0].AmountMinor)
	assert.Equal(t, int64(-10000), doc.Entries[1].AmountMinor)
}

func TestNormalizeExcludesBadRowsWithWarnings(t *testing.T) {
	rows := []RawRow{
		{"compte": "411", "date": "2025-01-10", "montant": "100.00"},
		{"compte": "", "date": "2025-01-10", "montant": "50.00"},
		{"compte": "512", "date": "not-a-date", "montant": "50.00"},
		{"compte": "512", "date": "2025-01-11", "montant": "garbage"},
		{"compte": "512", "date": "2025-01-11", "montant": "0"},
	}

	doc, warnings, err := Normalize(rows, "mixed.csv", model.DocumentTypeJournal, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 1)
	require.Len(t, warnings, 4)
	assert.Equal(t, 1, warnings[0].Row)
	assert.Equal(t, "account_code", warnings[0].Field)
	assert.Equal(t, 2, warnings[1].Row)
	assert.Equal(t, "date", warnings[1].Field)
}

func TestNormalizeDefaults(t *testing.T) {
	rows := []RawRow{
		{"compte": "512", "date": "15/01/2025", "montant": "10.00"},
	}

	doc, _, err := Normalize(rows, "bank.csv", model.DocumentTypeJournal, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)

	entry := doc.Entries[0]
	assert.Equal(t, "XOF", entry.Currency)
	assert.Equal(t, "bank.csv", entry.DocumentSource)
	assert.Equal(t, "bank.csv-row-0", entry.ID)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), entry.Date)
	assert.NotEmpty(t, doc.ID)
}

func TestNormalizeRejectsUnknownDocumentType(t *testing.T) {
	_, _, err := Normalize(nil, "x.csv", model.DocumentType("spreadsheet"), DefaultOptions())
	require.Error(t, err)
}

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Numéro de compte", "numero_de_compte"},
		{"  DEBIT  ", "debit"},
		{"Libellé-écriture", "libelle_ecriture"},
		{"Date.Operation", "date_operation"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, foldHeader(tt.in))
	}
}
