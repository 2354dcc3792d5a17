// Package normalize converts heterogeneous tabular accounting data into the
// canonical entry representation the validators consume.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
)

// RawRow is one row of arbitrary key-value input; column names vary by source.
type RawRow map[string]string

// Warning reports a row that was excluded during normalization.
type Warning struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Row    int    `json:"row"`
}

// Options configures how raw rows are normalized.
type Options struct {
	DefaultCurrency string
	// Exponent is the number of minor-unit digits per major unit (2 for
	// cent-based currencies). Amounts beyond it are rounded half away from zero.
	Exponent int32
}

// DefaultOptions returns the normalization defaults.
func DefaultOptions() Options {
	return Options{
		DefaultCurrency: "XOF",
		Exponent:        2,
	}
}

// Canonical field names rows are mapped onto.
const (
	fieldID          = "id"
	fieldAccount     = "account_code"
	fieldLabel       = "account_label"
	fieldDebit       = "debit"
	fieldCredit      = "credit"
	fieldAmount      = "amount"
	fieldDate        = "date"
	fieldDescription = "description"
	fieldReference   = "reference"
	fieldJournal     = "journal"
	fieldCurrency    = "currency"
	fieldCounterpart = "counterpart"
)

// columnAliases maps folded column headers to canonical fields. Covers the
// French and English headers seen in trial balances, journals, ledgers and
// FEC exports.
var columnAliases = map[string]string{
	"id": fieldID, "entry_id": fieldID, "ecriturenum": fieldID, "numero_ecriture": fieldID,

	"compte": fieldAccount, "numero_compte": fieldAccount, "numero_de_compte": fieldAccount, "n_compte": fieldAccount,
	"no_compte": fieldAccount, "code_compte": fieldAccount, "comptenum": fieldAccount,
	"account": fieldAccount, "account_number": fieldAccount, "account_code": fieldAccount,

	"libelle": fieldLabel, "libelle_compte": fieldLabel, "nom_compte": fieldLabel,
	"intitule": fieldLabel, "designation": fieldLabel, "comptelib": fieldLabel,
	"account_name": fieldLabel, "account_label": fieldLabel,

	"debit": fieldDebit, "montant_debit": fieldDebit, "solde_debiteur": fieldDebit, "dr": fieldDebit,

	"credit": fieldCredit, "montant_credit": fieldCredit, "solde_crediteur": fieldCredit, "cr": fieldCredit,

	"montant": fieldAmount, "amount": fieldAmount, "solde": fieldAmount, "valeur": fieldAmount,

	"date": fieldDate, "date_ecriture": fieldDate, "date_operation": fieldDate,
	"entry_date": fieldDate, "ecrituredate": fieldDate,

	"libelle_ecriture": fieldDescription, "description": fieldDescription,
	"objet": fieldDescription, "motif": fieldDescription, "memo": fieldDescription,
	"ecriturelib": fieldDescription, "narration": fieldDescription,

	"piece": fieldReference, "numero_piece": fieldReference, "n_piece": fieldReference,
	"reference": fieldReference, "pieceref": fieldReference, "ref": fieldReference,

	"journal": fieldJournal, "code_journal": fieldJournal, "journalcode": fieldJournal,

	"devise": fieldCurrency, "currency": fieldCurrency, "monnaie": fieldCurrency,

	"contrepartie": fieldCounterpart, "compte_contrepartie": fieldCounterpart,
	"counterpart": fieldCounterpart, "counterpart_account": fieldCounterpart,
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"20060102",
	time.RFC3339,
}

// Normalize converts raw rows into an immutable Document of canonical entries.
// Rows missing a required field are excluded and reported as warnings; a bad
// row never fails the whole batch. The function is pure: no I/O, no shared state.
func Normalize(rows []RawRow, name string, declaredType model.DocumentType, opts Options) (*model.Document, []Warning, error) {
	if _, err := model.ParseDocumentType(string(declaredType)); err != nil {
		return nil, nil, err
	}
	if opts.Exponent == 0 {
		opts.Exponent = DefaultOptions().Exponent
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultOptions().DefaultCurrency
	}

	doc := &model.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       declaredType,
		ImportedAt: time.Now(),
	}

	var warnings []Warning
	for i, row := range rows {
		entry, err := normalizeRow(row, i, name, opts)
		if err != nil {
			var nerr *common.NormalizationError
			if errors.As(err, &nerr) {
				warnings = append(warnings, Warning{Row: nerr.Row, Field: nerr.Field, Reason: nerr.Reason})
			} else {
				warnings = append(warnings, Warning{Row: i, Reason: err.Error()})
			}
			continue
		}
		doc.Entries = append(doc.Entries, entry)
	}

	return doc, warnings, nil
}

func normalizeRow(row RawRow, index int, docName string, opts Options) (model.AccountingEntry, error) {
	fields := make(map[string]string, len(row))
	for key, value := range row {
		canonical, ok := columnAliases[foldHeader(key)]
		if !ok {
			continue
		}
		if _, exists := fields[canonical]; !exists && strings.TrimSpace(value) != "" {
			fields[canonical] = strings.TrimSpace(value)
		}
	}

	account := fields[fieldAccount]
	if account == "" {
		return model.AccountingEntry{}, &common.NormalizationError{Row: index, Field: fieldAccount, Reason: "account code could not be resolved"}
	}

	rawDate := fields[fieldDate]
	if rawDate == "" {
		return model.AccountingEntry{}, &common.NormalizationError{Row: index, Field: fieldDate, Reason: "date could not be resolved"}
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return model.AccountingEntry{}, &common.NormalizationError{Row: index, Field: fieldDate, Reason: err.Error()}
	}

	amount, err := resolveAmount(fields, index, opts.Exponent)
	if err != nil {
		return model.AccountingEntry{}, err
	}
	if amount == 0 {
		return model.AccountingEntry{}, &common.NormalizationError{Row: index, Field: fieldAmount, Reason: "amount is zero"}
	}

	id := fields[fieldID]
	if id == "" {
		id = fmt.Sprintf("%s-row-%d", docName, index)
	}

	currency := fields[fieldCurrency]
	if currency == "" {
		currency = opts.DefaultCurrency
	}

	source := fields[fieldJournal]
	if source == "" {
		source = docName
	}

	return model.AccountingEntry{
		ID:                 id,
		AccountCode:        account,
		AccountLabel:       fields[fieldLabel],
		Date:               date,
		AmountMinor:        amount,
		Currency:           currency,
		DocumentSource:     source,
		Description:        fields[fieldDescription],
		CounterpartAccount: fields[fieldCounterpart],
		Reference:          fields[fieldReference],
	}, nil
}

// resolveAmount applies the sign convention: separate debit/credit columns net
// to debit-positive, credit-negative; a single amount column is taken as-is.
func resolveAmount(fields map[string]string, index int, exponent int32) (int64, error) {
	rawDebit, hasDebit := fields[fieldDebit]
	rawCredit, hasCredit := fields[fieldCredit]

	if hasDebit || hasCredit {
		var debit, credit int64
		var err error
		if hasDebit {
			debit, err = parseAmountMinor(rawDebit, exponent)
			if err != nil {
				return 0, &common.NormalizationError{Row: index, Field: fieldDebit, Reason: err.Error()}
			}
		}
		if hasCredit {
			credit, err = parseAmountMinor(rawCredit, exponent)
			if err != nil {
				return 0, &common.NormalizationError{Row: index, Field: fieldCredit, Reason: err.Error()}
			}
		}
		return debit - credit, nil
	}

	raw, ok := fields[fieldAmount]
	if !ok {
		return 0, &common.NormalizationError{Row: index, Field: fieldAmount, Reason: "no amount, debit or credit column resolved"}
	}
	amount, err := parseAmountMinor(raw, exponent)
	if err != nil {
		return 0, &common.NormalizationError{Row: index, Field: fieldAmount, Reason: err.Error()}
	}
	return amount, nil
}

// parseAmountMinor parses a locale-tolerant amount string into minor units.
// Accepts "1234.56", "1 234,56", "1,234.56" and negative values.
func parseAmountMinor(raw string, exponent int32) (int64, error) {
	cleaned := cleanAmount(raw)
	if cleaned == "" || cleaned == "-" {
		return 0, fmt.Errorf("empty amount %q", raw)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", raw)
	}
	return d.Shift(exponent).Round(0).IntPart(), nil
}

func cleanAmount(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '+', r == '.', r == ',':
			b.WriteRune(r)
		}
	}
	s := b.String()

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		// The rightmost separator is the decimal point, the other a
		// thousands separator.
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// foldHeader lowercases a column header, strips common French accents and
// collapses separators so alias lookup is layout-insensitive.
func foldHeader(header string) string {
	replacer := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a",
		"î", "i", "ï", "i",
		"ô", "o",
		"ù", "u", "û", "u",
		"ç", "c",
		" ", "_", "-", "_", ".", "_",
	)
	folded := replacer.Replace(strings.ToLower(strings.TrimSpace(header)))
	return strings.Trim(folded, "_")
}
