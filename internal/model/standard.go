// Package model defines the core domain types shared across the compliance engine.
package model

import (
	"fmt"
	"strings"
)

// Standard identifies an accounting framework governing which rules apply.
type Standard string

const (
	// StandardIFRS represents the International Financial Reporting Standards.
	StandardIFRS Standard = "ifrs"
	// StandardSYSCOHADA represents the revised SYSCOHADA chart of the OHADA zone.
	StandardSYSCOHADA Standard = "syscohada"
	// StandardUSGAAP represents United States Generally Accepted Accounting Principles.
	StandardUSGAAP Standard = "us_gaap"
	// StandardPCG represents the French Plan Comptable Général.
	StandardPCG Standard = "pcg"
	// StandardSYSCEBNL represents the OHADA chart for non-profit entities.
	StandardSYSCEBNL Standard = "syscebnl"
)

// Standards lists every supported accounting standard.
func Standards() []Standard {
	return []Standard{StandardIFRS, StandardSYSCOHADA, StandardUSGAAP, StandardPCG, StandardSYSCEBNL}
}

// ParseStandard converts a user-supplied identifier into a Standard.
func ParseStandard(s string) (Standard, error) {
	candidate := Standard(strings.ToLower(strings.TrimSpace(s)))
	for _, std := range Standards() {
		if candidate == std {
			return std, nil
		}
	}
	return "", fmt.Errorf("unknown accounting standard %q", s)
}

// IsValid reports whether the standard is one of the supported frameworks.
func (s Standard) IsValid() bool {
	for _, std := range Standards() {
		if s == std {
			return true
		}
	}
	return false
}
