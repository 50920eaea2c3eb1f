package calculators

import (
	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

// Method name labels
const (
	MethodBookValue         = "Book Value"
	MethodTangibleBookValue = "Tangible Book Value"
	MethodLiquidationValue  = "Liquidation Value"
)

// AssetCalculator implements balance-sheet based valuations
type AssetCalculator struct {
	facts *domain.CompanyFacts
	h     config.Heuristics
}

// NewAssetCalculator creates an asset-valuation calculator
func NewAssetCalculator(facts *domain.CompanyFacts, h config.Heuristics) *AssetCalculator {
	return &AssetCalculator{facts: facts, h: h}
}

// BookValue values the company at shareholders' equity per share
func (a *AssetCalculator) BookValue() domain.ValuationOutcome {
	equity := a.facts.Latest(domain.FieldShareholdersEquity)
	shares := a.facts.SharesOutstanding()

	if equity <= 0 {
		return domain.NotApplicableOutcome(MethodBookValue, "Negative or zero shareholder equity")
	}

	valuePerShare := equity / shares

	return domain.ValuationOutcome{
		Method:        MethodBookValue,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, a.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"shareholdersEquity": equity,
			"sharesOutstanding":  shares,
			"priceToBook":        a.facts.CurrentPrice() / valuePerShare,
		},
	}
}

// TangibleBookValue values the company at equity net of goodwill
func (a *AssetCalculator) TangibleBookValue() domain.ValuationOutcome {
	equity := a.facts.Latest(domain.FieldShareholdersEquity)
	goodwill := a.facts.Latest(domain.FieldGoodwill)
	shares := a.facts.SharesOutstanding()

	tangible := equity - goodwill
	if tangible <= 0 {
		return domain.NotApplicableOutcome(MethodTangibleBookValue, "Negative or zero tangible book value")
	}

	valuePerShare := tangible / shares

	return domain.ValuationOutcome{
		Method:        MethodTangibleBookValue,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, a.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"shareholdersEquity": equity,
			"goodwill":           goodwill,
			"tangibleBookValue":  tangible,
			"sharesOutstanding":  shares,
		},
	}
}

// LiquidationValue estimates what an orderly wind-down would return to
// shareholders: current assets at a high recovery rate, tangible fixed
// assets at a moderate one, intangibles at near-zero, less all liabilities
func (a *AssetCalculator) LiquidationValue() domain.ValuationOutcome {
	currentAssets := a.facts.Latest(domain.FieldCurrentAssets)
	totalAssets := a.facts.Latest(domain.FieldTotalAssets)
	goodwill := a.facts.Latest(domain.FieldGoodwill)
	totalLiabilities := a.facts.Latest(domain.FieldTotalLiabilities)
	shares := a.facts.SharesOutstanding()

	nonCurrentAssets := totalAssets - currentAssets
	tangibleFixedAssets := nonCurrentAssets - goodwill

	liquidationValue := currentAssets*a.h.CurrentAssetRecovery +
		tangibleFixedAssets*a.h.FixedAssetRecovery +
		goodwill*a.h.IntangibleAssetRecovery -
		totalLiabilities

	if liquidationValue <= 0 {
		return domain.NotApplicableOutcome(MethodLiquidationValue, "Negative liquidation value")
	}

	valuePerShare := liquidationValue / shares

	return domain.ValuationOutcome{
		Method:        MethodLiquidationValue,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, a.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"currentAssets":         currentAssets,
			"currentAssetsRecovery": a.h.CurrentAssetRecovery,
			"fixedAssets":           tangibleFixedAssets,
			"fixedAssetsRecovery":   a.h.FixedAssetRecovery,
			"intangibleAssets":      goodwill,
			"intangibleRecovery":    a.h.IntangibleAssetRecovery,
			"totalLiabilities":      totalLiabilities,
			"liquidationValue":      liquidationValue,
		},
	}
}
