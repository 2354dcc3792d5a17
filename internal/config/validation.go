package config

import (
	"github.com/spf13/viper"

	"github.com/zencompta/zencompta-engine/internal/validate"
)

// SetValidationDefaults registers the detection threshold defaults under the
// validation.* keys so a config file or environment variable can override any
// of them.
func SetValidationDefaults() {
	crossDoc := validate.DefaultCrossDocumentConfig()
	temporal := validate.DefaultTemporalConfig()
	suspicious := validate.DefaultSuspiciousConfig()

	viper.SetDefault("validation.cross_document.tolerance_minor", crossDoc.ToleranceMinor)
	viper.SetDefault("validation.temporal.deviation_threshold", temporal.DeviationThreshold)
	viper.SetDefault("validation.temporal.window", temporal.Window)
	viper.SetDefault("validation.temporal.min_baseline", temporal.MinBaseline)
	viper.SetDefault("validation.temporal.min_relative_deviation", temporal.MinRelativeDeviation)
	viper.SetDefault("validation.suspicious.min_score", suspicious.MinScore)
	viper.SetDefault("validation.suspicious.round_unit_minor", suspicious.RoundUnitMinor)
	viper.SetDefault("validation.suspicious.round_frequency_threshold", suspicious.RoundFrequencyThreshold)
	viper.SetDefault("validation.suspicious.benford_min_sample", suspicious.BenfordMinSample)
	viper.SetDefault("validation.suspicious.benford_chi_square_threshold", suspicious.BenfordChiSquareThreshold)
}

// LoadCrossDocumentConfig reads the cross-document thresholds from Viper.
func LoadCrossDocumentConfig() validate.CrossDocumentConfig {
	config := validate.DefaultCrossDocumentConfig()
	config.ToleranceMinor = viper.GetInt64("validation.cross_document.tolerance_minor")
	return config
}

// LoadTemporalConfig reads the temporal thresholds from Viper.
func LoadTemporalConfig() validate.TemporalConfig {
	config := validate.DefaultTemporalConfig()
	if v := viper.GetFloat64("validation.temporal.deviation_threshold"); v > 0 {
		config.DeviationThreshold = v
	}
	if v := viper.GetInt("validation.temporal.window"); v > 0 {
		config.Window = v
	}
	if v := viper.GetInt("validation.temporal.min_baseline"); v > 0 {
		config.MinBaseline = v
	}
	if v := viper.GetFloat64("validation.temporal.min_relative_deviation"); v > 0 {
		config.MinRelativeDeviation = v
	}
	return config
}

// LoadSuspiciousConfig reads the suspicious-entry thresholds from Viper.
func LoadSuspiciousConfig() validate.SuspiciousConfig {
	config := validate.DefaultSuspiciousConfig()
	if v := viper.GetFloat64("validation.suspicious.min_score"); v > 0 {
		config.MinScore = v
	}
	if v := viper.GetInt64("validation.suspicious.round_unit_minor"); v > 0 {
		config.RoundUnitMinor = v
	}
	if v := viper.GetFloat64("validation.suspicious.round_frequency_threshold"); v > 0 {
		config.RoundFrequencyThreshold = v
	}
	if v := viper.GetInt("validation.suspicious.benford_min_sample"); v > 0 {
		config.BenfordMinSample = v
	}
	if v := viper.GetFloat64("validation.suspicious.benford_chi_square_threshold"); v > 0 {
		config.BenfordChiSquareThreshold = v
	}
	return config
}
