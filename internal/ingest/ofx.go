package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/zencompta/zencompta-engine/internal/normalize"
)

// OFXReader parses OFX/QFX bank statements into raw rows. Amounts keep the
// OFX sign convention: deposits positive, withdrawals negative, which matches
// the debit-positive convention on the holder's bank account.
type OFXReader struct{}

// NewOFXReader creates an OFX reader.
func NewOFXReader() *OFXReader {
	return &OFXReader{}
}

var (
	ofxSeverityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	ofxTagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML tags missing their closing
// bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = ofxSeverityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = ofxTagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Read implements Reader.
func (or *OFXReader) Read(ctx context.Context, r io.Reader) ([]normalize.RawRow, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var rows []normalize.RawRow
	var statements int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		statements++
		account := string(stmt.BankAcctFrom.AcctID)
		currency := stmt.CurDef.String()
		for _, tx := range stmt.BankTranList.Transactions {
			rows = append(rows, transactionRow(tx, account, currency))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		statements++
		account := string(stmt.CCAcctFrom.AcctID)
		currency := stmt.CurDef.String()
		for _, tx := range stmt.BankTranList.Transactions {
			rows = append(rows, transactionRow(tx, account, currency))
		}
	}

	slog.Info("Parsed OFX file",
		"rows", len(rows),
		"statements", statements)

	return rows, nil
}

func transactionRow(tx ofxgo.Transaction, account, currency string) normalize.RawRow {
	description := string(tx.Name)
	if tx.Memo != "" {
		if description == "" {
			description = string(tx.Memo)
		} else {
			description = description + " " + string(tx.Memo)
		}
	}

	return normalize.RawRow{
		"id":          string(tx.FiTID),
		"account":     account,
		"date":        tx.DtPosted.Time.Format("2006-01-02"),
		"amount":      tx.TrnAmt.String(),
		"description": description,
		"reference":   string(tx.CheckNum),
		"currency":    currency,
	}
}
