package validate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// benfordExpected is the expected frequency of each leading digit 1-9 under
// Benford's law.
var benfordExpected = [9]float64{
	0.301, 0.176, 0.125, 0.097, 0.079, 0.067, 0.058, 0.051, 0.046,
}

// SuspiciousConfig holds configuration for the suspicious-entry detector.
type SuspiciousConfig struct {
	// MinScore suppresses findings scoring below it.
	MinScore float64
	// RoundUnitMinor defines what counts as a round amount, in minor units.
	RoundUnitMinor int64
	// RoundFrequencyThreshold is the share of round amounts above which an
	// account is flagged.
	RoundFrequencyThreshold float64
	// BenfordMinSample is the minimum entry count before the leading-digit
	// test applies to an account.
	BenfordMinSample int
	// BenfordChiSquareThreshold is the chi-square statistic above which the
	// leading-digit distribution is considered anomalous.
	BenfordChiSquareThreshold float64
	// WeightBenford, WeightRound and WeightDuplicate set how fast each
	// signal's score grows beyond MinScore. A signal at its detection
	// threshold always scores exactly MinScore, whatever its weight.
	WeightBenford   float64
	WeightRound     float64
	WeightDuplicate float64
}

// DefaultSuspiciousConfig returns the default configuration.
func DefaultSuspiciousConfig() SuspiciousConfig {
	return SuspiciousConfig{
		MinScore:                  0.5,
		RoundUnitMinor:            100_000,
		RoundFrequencyThreshold:   0.15,
		BenfordMinSample:          50,
		BenfordChiSquareThreshold: 15.507,
		WeightBenford:             0.9,
		WeightRound:               0.8,
		WeightDuplicate:           1.0,
	}
}

// SuspiciousValidator detects statistically unusual entry patterns: duplicate
// postings, excessive round amounts, and leading-digit distributions that
// break Benford's law.
type SuspiciousValidator struct {
	config SuspiciousConfig
}

// NewSuspiciousValidator creates a suspicious-entry validator.
func NewSuspiciousValidator(config SuspiciousConfig) *SuspiciousValidator {
	def := DefaultSuspiciousConfig()
	if config.RoundUnitMinor <= 0 {
		config.RoundUnitMinor = def.RoundUnitMinor
	}
	if config.RoundFrequencyThreshold <= 0 {
		config.RoundFrequencyThreshold = def.RoundFrequencyThreshold
	}
	if config.BenfordMinSample <= 0 {
		config.BenfordMinSample = def.BenfordMinSample
	}
	if config.BenfordChiSquareThreshold <= 0 {
		config.BenfordChiSquareThreshold = def.BenfordChiSquareThreshold
	}
	if config.WeightBenford <= 0 {
		config.WeightBenford = def.WeightBenford
	}
	if config.WeightRound <= 0 {
		config.WeightRound = def.WeightRound
	}
	if config.WeightDuplicate <= 0 {
		config.WeightDuplicate = def.WeightDuplicate
	}
	return &SuspiciousValidator{config: config}
}

// Name implements Validator.
func (v *SuspiciousValidator) Name() string {
	return "suspicious_entries"
}

// scale maps a raw signal score onto the reporting scale. The anchor point is
// MinScore: raw scores at the detection threshold (which the raw formulas put
// at 0.5) pass through unchanged under the default config, and the weight only
// shapes how quickly the score climbs above the anchor. Suppression therefore
// depends on the raw score alone, never on the weight.
func (v *SuspiciousValidator) scale(raw, weight float64) float64 {
	return v.config.MinScore + (raw-v.config.MinScore)*weight
}

// Run implements Validator. Duplicate groups produce one finding each. The
// Benford and round-amount signals are per-account and merge into one finding
// per account, combined by weighted maximum so the strongest signal dominates.
func (v *SuspiciousValidator) Run(ctx context.Context, in Input) (Result, error) {
	var result Result

	entries := collectEntries(in.Documents)

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	v.detectDuplicates(entries, &result)
	v.detectAccountPatterns(entries, &result)

	return result, nil
}

func collectEntries(docs []*model.Document) []*model.AccountingEntry {
	var entries []*model.AccountingEntry
	for _, doc := range docs {
		for i := range doc.Entries {
			entries = append(entries, &doc.Entries[i])
		}
	}
	return entries
}

// detectDuplicates groups entries sharing account, date, amount and
// description. A pair scores 0.8 and each extra occurrence adds 0.1, capped
// at 1.0.
func (v *SuspiciousValidator) detectDuplicates(entries []*model.AccountingEntry, result *Result) {
	result.ChecksEvaluated++

	groups := make(map[string][]*model.AccountingEntry)
	for _, entry := range entries {
		key := entry.DuplicateKey()
		groups[key] = append(groups[key], entry)
	}

	keys := make([]string, 0, len(groups))
	for key, group := range groups {
		if len(group) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		group := groups[key]
		raw := 0.8 + 0.1*float64(len(group)-2)
		if raw > 1.0 {
			raw = 1.0
		}
		score := v.scale(raw, v.config.WeightDuplicate)
		if score < v.config.MinScore {
			continue
		}

		ids := make([]string, 0, len(group))
		for _, entry := range group {
			ids = append(ids, entry.ID)
		}
		first := group[0]
		result.Findings = append(result.Findings, model.Finding{
			Source:   "suspicious_entries",
			Category: "duplicate",
			Severity: model.SeverityWarning,
			Score:    score,
			Message: fmt.Sprintf("%d identical entries on account %s dated %s for %d minor units",
				len(group), first.AccountCode, first.Date.Format("2006-01-02"), first.AmountMinor),
			AffectedEntryIDs: ids,
		})
	}
}

type accountStats struct {
	digitCounts [9]int
	entryIDs    []string
	total       int
	round       int
}

// detectAccountPatterns runs the Benford and round-amount tests per account
// and merges their signals into at most one finding per account.
func (v *SuspiciousValidator) detectAccountPatterns(entries []*model.AccountingEntry, result *Result) {
	stats := make(map[string]*accountStats)
	for _, entry := range entries {
		s, ok := stats[entry.AccountCode]
		if !ok {
			s = &accountStats{}
			stats[entry.AccountCode] = s
		}
		s.total++
		s.entryIDs = append(s.entryIDs, entry.ID)

		amount := entry.AmountMinor
		if amount < 0 {
			amount = -amount
		}
		if amount != 0 && amount%v.config.RoundUnitMinor == 0 {
			s.round++
		}
		if digit := leadingDigit(amount); digit > 0 {
			s.digitCounts[digit-1]++
		}
	}

	accounts := make([]string, 0, len(stats))
	for account := range stats {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	for _, account := range accounts {
		s := stats[account]

		var score float64
		var signals []string

		result.ChecksEvaluated++
		frequency := float64(s.round) / float64(s.total)
		if frequency > v.config.RoundFrequencyThreshold {
			raw := 0.5 * frequency / v.config.RoundFrequencyThreshold
			if raw > 1.0 {
				raw = 1.0
			}
			if roundScore := v.scale(raw, v.config.WeightRound); roundScore > score {
				score = roundScore
			}
			signals = append(signals, fmt.Sprintf("%.0f%% round amounts", frequency*100))
		}

		if s.total >= v.config.BenfordMinSample {
			result.ChecksEvaluated++
			chi2 := v.chiSquare(s)
			if chi2 > v.config.BenfordChiSquareThreshold {
				raw := chi2 / (2 * v.config.BenfordChiSquareThreshold)
				if raw > 1.0 {
					raw = 1.0
				}
				if benfordScore := v.scale(raw, v.config.WeightBenford); benfordScore > score {
					score = benfordScore
				}
				signals = append(signals, fmt.Sprintf("leading-digit chi-square %.1f", chi2))
			}
		}

		if len(signals) == 0 || score < v.config.MinScore {
			continue
		}

		result.Findings = append(result.Findings, model.Finding{
			Source:   "suspicious_entries",
			Category: "statistical",
			Severity: model.SeverityWarning,
			Score:    score,
			Message: fmt.Sprintf("account %s shows unusual amount patterns: %s",
				account, strings.Join(signals, ", ")),
			AffectedEntryIDs: append([]string(nil), s.entryIDs...),
		})
	}
}

func (v *SuspiciousValidator) chiSquare(s *accountStats) float64 {
	var sampled int
	for _, count := range s.digitCounts {
		sampled += count
	}
	if sampled == 0 {
		return 0
	}
	var chi2 float64
	for i, count := range s.digitCounts {
		expected := benfordExpected[i] * float64(sampled)
		delta := float64(count) - expected
		chi2 += delta * delta / expected
	}
	return chi2
}

func leadingDigit(amount int64) int {
	if amount <= 0 {
		return 0
	}
	for amount >= 10 {
		amount /= 10
	}
	return int(amount)
}
