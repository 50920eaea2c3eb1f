package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Heuristics collects the tunable constants behind the valuation methods.
// Several of these (the EBITDA estimation factor, the assumed borrowing
// rate) are placeholder estimates rather than derived facts, so they are
// kept configurable instead of being buried in the calculators.
type Heuristics struct {
	// Cost of capital
	RiskFreeRate      float64 `yaml:"risk_free_rate"`
	MarketRiskPremium float64 `yaml:"market_risk_premium"`
	DefaultTaxRate    float64 `yaml:"default_tax_rate"`

	// DCF projections
	TerminalGrowthRate    float64 `yaml:"terminal_growth_rate"`
	FCFEProjectionYears   int     `yaml:"fcfe_projection_years"`
	FCFEGrowthDecay       float64 `yaml:"fcfe_growth_decay"`
	FCFEGrowthCap         float64 `yaml:"fcfe_growth_cap"`
	FCFFProjectionYears   int     `yaml:"fcff_projection_years"`
	FCFFGrowthCap         float64 `yaml:"fcff_growth_cap"`
	FCFFBorrowingRate     float64 `yaml:"fcff_borrowing_rate"`
	FCFFLateGrowthDecay   float64 `yaml:"fcff_late_growth_decay"`
	DefaultGrowthEstimate float64 `yaml:"default_growth_estimate"`
	DefaultDividendGrowth float64 `yaml:"default_dividend_growth"`

	// Relative valuation
	EBITDAFromOperatingIncome float64 `yaml:"ebitda_from_operating_income"`
	DefaultPEMultiple         float64 `yaml:"default_pe_multiple"`
	DefaultEVEBITDAMultiple   float64 `yaml:"default_ev_ebitda_multiple"`

	// Liquidation recovery rates
	CurrentAssetRecovery    float64 `yaml:"current_asset_recovery"`
	FixedAssetRecovery      float64 `yaml:"fixed_asset_recovery"`
	IntangibleAssetRecovery float64 `yaml:"intangible_asset_recovery"`

	// Earnings methods
	EarningsHistoryYears int `yaml:"earnings_history_years"`
}

// DefaultHeuristics returns the stock constants used when no override file
// is configured
func DefaultHeuristics() Heuristics {
	return Heuristics{
		RiskFreeRate:      0.045,
		MarketRiskPremium: 0.06,
		DefaultTaxRate:    0.25,

		TerminalGrowthRate:    0.025,
		FCFEProjectionYears:   5,
		FCFEGrowthDecay:       0.85,
		FCFEGrowthCap:         0.15,
		FCFFProjectionYears:   10,
		FCFFGrowthCap:         0.12,
		FCFFBorrowingRate:     0.04,
		FCFFLateGrowthDecay:   0.7,
		DefaultGrowthEstimate: 0.10,
		DefaultDividendGrowth: 0.06,

		EBITDAFromOperatingIncome: 1.15,
		DefaultPEMultiple:         16.0,
		DefaultEVEBITDAMultiple:   12.0,

		CurrentAssetRecovery:    0.85,
		FixedAssetRecovery:      0.60,
		IntangibleAssetRecovery: 0.10,

		EarningsHistoryYears: 5,
	}
}

// LoadHeuristics reads overrides from a YAML file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("failed to read heuristics file: %w", err)
	}

	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to parse heuristics file: %w", err)
	}

	return h, nil
}
