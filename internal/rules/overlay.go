package rules

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// overlayFile is the YAML schema for caller-defined threshold rules.
type overlayFile struct {
	Rules []overlaySpec `yaml:"rules"`
}

type overlaySpec struct {
	ID            string   `yaml:"id"`
	Standard      string   `yaml:"standard"`
	Category      string   `yaml:"category"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Severity      string   `yaml:"severity"`
	AccountPrefix string   `yaml:"account_prefix"`
	MaxAmount     *float64 `yaml:"max_amount"`
	MinAmount     *float64 `yaml:"min_amount"`
	Remediation   []string `yaml:"remediation"`
	References    []string `yaml:"references"`
}

// LoadOverlay parses caller-defined rules from YAML. Each rule constrains the
// absolute amount of entries on accounts matching a prefix; amounts in the
// file are major units.
func LoadOverlay(r io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read overlay: %w", err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse overlay: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, spec := range file.Rules {
		rule, err := spec.toRule()
		if err != nil {
			return nil, fmt.Errorf("overlay rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s overlaySpec) toRule() (Rule, error) {
	if s.ID == "" {
		return Rule{}, fmt.Errorf("rule ID is required")
	}
	standard, err := model.ParseStandard(s.Standard)
	if err != nil {
		return Rule{}, err
	}
	severity := model.Severity(s.Severity)
	if !severity.IsValid() {
		return Rule{}, fmt.Errorf("invalid severity %q", s.Severity)
	}
	if s.AccountPrefix == "" {
		return Rule{}, fmt.Errorf("account_prefix is required")
	}
	if s.MaxAmount == nil && s.MinAmount == nil {
		return Rule{}, fmt.Errorf("at least one of max_amount or min_amount is required")
	}

	category := Category(s.Category)
	if category == "" {
		category = CategoryMeasurement
	}

	var maxMinor, minMinor int64
	if s.MaxAmount != nil {
		maxMinor = toMinor(*s.MaxAmount)
	}
	if s.MinAmount != nil {
		minMinor = toMinor(*s.MinAmount)
	}

	prefix := s.AccountPrefix
	hasMax := s.MaxAmount != nil
	hasMin := s.MinAmount != nil

	return Rule{
		ID:          s.ID,
		Standard:    standard,
		Category:    category,
		Title:       s.Title,
		Description: s.Description,
		Severity:    severity,
		Remediation: s.Remediation,
		References:  s.References,
		Check: func(doc *model.Document) []model.Finding {
			var findings []model.Finding
			for i := range doc.Entries {
				entry := &doc.Entries[i]
				if !hasPrefix(entry.AccountCode, []string{prefix}) {
					continue
				}
				amount := entry.AmountMinor
				if amount < 0 {
					amount = -amount
				}
				if hasMax && amount > maxMinor {
					findings = append(findings, model.Finding{
						Message:          fmt.Sprintf("amount %d minor units on account %s exceeds the %d minor-unit ceiling", entry.AmountMinor, entry.AccountCode, maxMinor),
						AffectedEntryIDs: []string{entry.ID},
					})
				}
				if hasMin && amount < minMinor {
					findings = append(findings, model.Finding{
						Message:          fmt.Sprintf("amount %d minor units on account %s is below the %d minor-unit floor", entry.AmountMinor, entry.AccountCode, minMinor),
						AffectedEntryIDs: []string{entry.ID},
					})
				}
			}
			return findings
		},
	}, nil
}

func toMinor(major float64) int64 {
	return decimal.NewFromFloat(major).Shift(2).Round(0).IntPart()
}
