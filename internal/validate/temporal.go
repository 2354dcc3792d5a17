package validate

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/zencompta/zencompta-engine/internal/model"
)

// TemporalConfig holds configuration for temporal anomaly detection.
type TemporalConfig struct {
	// DeviationThreshold is the number of standard deviations above which a
	// period's activity is flagged.
	DeviationThreshold float64
	// Window is the maximum number of trailing periods used as the baseline.
	Window int
	// MinBaseline is the number of trailing periods required before a period
	// is tested. A one- or two-period baseline makes the z-score meaningless.
	MinBaseline int
	// MinRelativeDeviation is the minimum change relative to the baseline
	// mean before a period can be flagged, regardless of z-score. This keeps
	// in-noise wiggles on flat or low-variance baselines from flagging.
	MinRelativeDeviation float64
}

// DefaultTemporalConfig returns the default configuration.
func DefaultTemporalConfig() TemporalConfig {
	return TemporalConfig{
		DeviationThreshold:   2.0,
		Window:               12,
		MinBaseline:          3,
		MinRelativeDeviation: 0.25,
	}
}

// TemporalValidator detects abnormal month-over-month activity swings per
// account. Activity is the sum of absolute amounts posted in a calendar month.
type TemporalValidator struct {
	config TemporalConfig
}

// NewTemporalValidator creates a temporal validator.
func NewTemporalValidator(config TemporalConfig) *TemporalValidator {
	if config.DeviationThreshold <= 0 {
		config.DeviationThreshold = DefaultTemporalConfig().DeviationThreshold
	}
	if config.Window <= 0 {
		config.Window = DefaultTemporalConfig().Window
	}
	if config.MinBaseline <= 0 {
		config.MinBaseline = DefaultTemporalConfig().MinBaseline
	}
	if config.MinRelativeDeviation <= 0 {
		config.MinRelativeDeviation = DefaultTemporalConfig().MinRelativeDeviation
	}
	return &TemporalValidator{config: config}
}

// Name implements Validator.
func (v *TemporalValidator) Name() string {
	return "temporal"
}

type periodActivity struct {
	period   string
	total    float64
	entryIDs []string
}

// Run implements Validator. Each tested period is compared against the mean
// and standard deviation of the trailing window. The first MinBaseline
// periods of a series carry no usable baseline and are never flagged, and a
// period must move by at least MinRelativeDeviation of the baseline mean
// before its z-score counts.
func (v *TemporalValidator) Run(ctx context.Context, in Input) (Result, error) {
	type accountSeries struct {
		account string
		periods map[string]*periodActivity
	}

	byAccount := make(map[string]*accountSeries)
	for _, doc := range in.Documents {
		for i := range doc.Entries {
			entry := &doc.Entries[i]
			series, ok := byAccount[entry.AccountCode]
			if !ok {
				series = &accountSeries{
					account: entry.AccountCode,
					periods: make(map[string]*periodActivity),
				}
				byAccount[entry.AccountCode] = series
			}
			period := entry.Period()
			activity, ok := series.periods[period]
			if !ok {
				activity = &periodActivity{period: period}
				series.periods[period] = activity
			}
			amount := entry.AmountMinor
			if amount < 0 {
				amount = -amount
			}
			activity.total += float64(amount)
			activity.entryIDs = append(activity.entryIDs, entry.ID)
		}
	}

	accounts := make([]string, 0, len(byAccount))
	for account := range byAccount {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	var result Result
	for _, account := range accounts {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		series := byAccount[account]
		ordered := make([]*periodActivity, 0, len(series.periods))
		for _, activity := range series.periods {
			ordered = append(ordered, activity)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].period < ordered[j].period
		})

		for i := v.config.MinBaseline; i < len(ordered); i++ {
			result.ChecksEvaluated++

			start := i - v.config.Window
			if start < 0 {
				start = 0
			}
			baseline := ordered[start:i]
			mean, std := meanStd(baseline)
			current := ordered[i]

			if math.Abs(current.total-mean) < v.config.MinRelativeDeviation*mean {
				continue
			}

			var score float64
			switch {
			case std == 0:
				if current.total == mean {
					continue
				}
				score = 1.0
			default:
				z := math.Abs(current.total-mean) / std
				if z < v.config.DeviationThreshold {
					continue
				}
				score = z / (2 * v.config.DeviationThreshold)
				if score > 1.0 {
					score = 1.0
				}
			}

			severity := model.SeverityWarning
			if score >= 1.0 {
				severity = model.SeverityError
			}
			result.Findings = append(result.Findings, model.Finding{
				Source:   "temporal",
				Category: "temporal",
				Severity: severity,
				Score:    score,
				Message: fmt.Sprintf("account %s activity in %s deviates from its trailing %d-period baseline (%.0f vs mean %.0f minor units)",
					account, current.period, len(baseline), current.total, mean),
				AffectedEntryIDs: append([]string(nil), current.entryIDs...),
			})
		}
	}

	return result, nil
}

func meanStd(periods []*periodActivity) (mean, std float64) {
	if len(periods) == 0 {
		return 0, 0
	}
	for _, p := range periods {
		mean += p.total
	}
	mean /= float64(len(periods))
	for _, p := range periods {
		delta := p.total - mean
		std += delta * delta
	}
	std = math.Sqrt(std / float64(len(periods)))
	return mean, std
}
