// Package rules holds the compliance rule catalog: read-only, per-standard
// rule sets evaluated against canonical documents.
package rules

import (
	"fmt"

	"github.com/zencompta/zencompta-engine/internal/common"
	"github.com/zencompta/zencompta-engine/internal/model"
)

// Category classifies what aspect of the accounts a rule covers.
type Category string

const (
	// CategoryStructure covers chart-of-accounts structure rules.
	CategoryStructure Category = "structure"
	// CategoryValuation covers asset and liability valuation rules.
	CategoryValuation Category = "valuation"
	// CategoryPresentation covers financial statement presentation rules.
	CategoryPresentation Category = "presentation"
	// CategoryRecognition covers revenue and expense recognition rules.
	CategoryRecognition Category = "recognition"
	// CategoryMeasurement covers amount measurement and balancing rules.
	CategoryMeasurement Category = "measurement"
	// CategoryDisclosure covers documentation and disclosure rules.
	CategoryDisclosure Category = "disclosure"
)

// CheckFunc evaluates one rule against a document. It must be pure: no rule
// may depend on another rule's output within a run.
type CheckFunc func(doc *model.Document) []model.Finding

// Rule is a single compliance rule bound to one accounting standard. Rules are
// read-only configuration and are never mutated during evaluation.
type Rule struct {
	Check       CheckFunc
	ID          string
	Title       string
	Description string
	Standard    model.Standard
	Category    Category
	Severity    model.Severity
	Remediation []string
	References  []string
}

// Evaluate runs the rule's check and stamps rule metadata onto each finding.
func Evaluate(rule Rule, doc *model.Document) []model.Finding {
	findings := rule.Check(doc)
	for i := range findings {
		findings[i].RuleID = rule.ID
		findings[i].Source = "standard_compliance"
		findings[i].Category = string(rule.Category)
		findings[i].Severity = rule.Severity
		findings[i].Remediation = rule.Remediation
		if findings[i].Score == 0 {
			findings[i].Score = 1.0
		}
	}
	return findings
}

// Catalog is the immutable per-run collection of rules. Build one with
// NewCatalog and pass it explicitly; there is no process-wide rule state.
type Catalog struct {
	rules map[model.Standard][]Rule
}

// NewCatalog returns a catalog populated with the built-in rule sets.
func NewCatalog() *Catalog {
	c := &Catalog{rules: make(map[model.Standard][]Rule)}
	for _, r := range builtinRules() {
		c.rules[r.Standard] = append(c.rules[r.Standard], r)
	}
	return c
}

// ForStandard returns the rules bound to the given standard.
func (c *Catalog) ForStandard(std model.Standard) ([]Rule, error) {
	rules, ok := c.rules[std]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedStandard, std)
	}
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out, nil
}

// WithOverlay returns a new catalog extending this one with custom rules.
// The receiver is left untouched.
func (c *Catalog) WithOverlay(overlay []Rule) (*Catalog, error) {
	next := &Catalog{rules: make(map[model.Standard][]Rule, len(c.rules))}
	for std, rules := range c.rules {
		next.rules[std] = append([]Rule(nil), rules...)
	}
	for _, r := range overlay {
		if !r.Standard.IsValid() {
			return nil, fmt.Errorf("%w: overlay rule %s targets %q", common.ErrUnsupportedStandard, r.ID, r.Standard)
		}
		if r.Check == nil {
			return nil, fmt.Errorf("overlay rule %s has no check", r.ID)
		}
		next.rules[r.Standard] = append(next.rules[r.Standard], r)
	}
	return next, nil
}

func builtinRules() []Rule {
	var all []Rule
	all = append(all, ifrsRules()...)
	all = append(all, syscohadaRules()...)
	all = append(all, pcgRules()...)
	all = append(all, usGAAPRules()...)
	all = append(all, syscebnlRules()...)
	return all
}
