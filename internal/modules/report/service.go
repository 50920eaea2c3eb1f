package report

import (
	"github.com/rs/zerolog"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/internal/modules/risk"
	"github.com/aristath/valuator/internal/modules/valuation"
)

// Service runs the full pipeline for one company: valuation methods,
// aggregation, risk assessment, report assembly
type Service struct {
	valuation *valuation.Service
	assembler *Assembler
	log       zerolog.Logger
}

// NewService creates a report service
func NewService(h config.Heuristics, log zerolog.Logger) *Service {
	return &Service{
		valuation: valuation.NewService(h, log),
		assembler: NewAssembler(),
		log:       log.With().Str("module", "report").Logger(),
	}
}

// Generate produces the complete valuation report for a company
func (s *Service) Generate(facts *domain.CompanyFacts) domain.ValuationReport {
	breakdown, aggregation := s.valuation.Valuate(facts)
	riskProfile := risk.NewAnalyzer(facts).Analyze()

	result := s.assembler.Assemble(facts, breakdown, aggregation, riskProfile)

	s.log.Info().
		Str("ticker", result.Ticker).
		Float64("intrinsic_value", result.IntrinsicValue).
		Float64("upside", result.Upside).
		Str("recommendation", result.Recommendation).
		Str("confidence", result.Confidence).
		Msg("valuation report generated")

	return result
}
