// Package valuation runs the individual valuation methods and blends their
// estimates into one intrinsic value per share.
package valuation

import (
	"github.com/rs/zerolog"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/internal/modules/valuation/calculators"
)

// Service runs the full method suite for a company
type Service struct {
	h   config.Heuristics
	log zerolog.Logger
}

// NewService creates a valuation service
func NewService(h config.Heuristics, log zerolog.Logger) *Service {
	return &Service{
		h:   h,
		log: log.With().Str("module", "valuation").Logger(),
	}
}

// Valuate runs every valuation method for a company and aggregates the
// applicable outcomes. Method failures surface as inapplicable outcomes in
// the breakdown, never as errors.
func (s *Service) Valuate(facts *domain.CompanyFacts) (domain.ValuationBreakdown, Aggregation) {
	capital := calculators.NewCapitalCalculator(facts, s.h)
	dcf := calculators.NewDCFCalculator(facts, capital, s.h)
	relative := calculators.NewRelativeCalculator(facts, s.h)
	asset := calculators.NewAssetCalculator(facts, s.h)
	earnings := calculators.NewEarningsCalculator(facts, capital, s.h)

	breakdown := domain.ValuationBreakdown{
		DCF: domain.DCFOutcomes{
			FCFE: dcf.FCFE(),
			FCFF: dcf.FCFF(),
			DDM:  dcf.DDM(),
		},
		Relative: domain.RelativeOutcomes{
			PE:       relative.PE(),
			EVEBITDA: relative.EVEBITDA(),
		},
		Asset: domain.AssetOutcomes{
			BookValue:         asset.BookValue(),
			TangibleBookValue: asset.TangibleBookValue(),
			LiquidationValue:  asset.LiquidationValue(),
		},
		Earnings: domain.EarningsOutcomes{
			CapitalizedEarnings: earnings.CapitalizedEarnings(),
			EarningsPowerValue:  earnings.EarningsPowerValue(),
		},
	}

	logInapplicable(s.log, facts.Ticker, breakdown)

	aggregation := Aggregate(facts, breakdown)
	s.log.Debug().
		Str("ticker", facts.Ticker).
		Float64("intrinsic_value", aggregation.IntrinsicValue).
		Str("confidence", aggregation.Confidence).
		Int("methods", len(aggregation.Methods)).
		Msg("valuation aggregated")

	return breakdown, aggregation
}

func logInapplicable(log zerolog.Logger, ticker string, breakdown domain.ValuationBreakdown) {
	for _, outcome := range []domain.ValuationOutcome{
		breakdown.DCF.FCFE, breakdown.DCF.FCFF, breakdown.DCF.DDM,
		breakdown.Relative.PE, breakdown.Relative.EVEBITDA,
		breakdown.Asset.BookValue, breakdown.Asset.TangibleBookValue, breakdown.Asset.LiquidationValue,
		breakdown.Earnings.CapitalizedEarnings, breakdown.Earnings.EarningsPowerValue,
	} {
		if outcome.NotApplicable {
			log.Debug().
				Str("ticker", ticker).
				Str("method", outcome.Method).
				Str("reason", outcome.Reason).
				Msg("method not applicable")
		}
	}
}
