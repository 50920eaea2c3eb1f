package risk

// Inherent cyclicality/disruption risk per sector, 0-100
var sectorRiskScores = map[string]float64{
	"Technology":             65,
	"Biotechnology":          80,
	"Energy":                 70,
	"Materials":              60,
	"Basic Materials":        60,
	"Healthcare":             50,
	"Industrials":            50,
	"Communication Services": 55,
	"Financials":             45,
	"Financial Services":     45,
	"Real Estate":            45,
	"Consumer Cyclical":      55,
	"Consumer Defensive":     30,
	"Utilities":              25,
}

const defaultSectorRiskScore = 50

// FinancialScore returns a 0-100 score built from leverage, liquidity,
// coverage, profitability, and revenue stability
func (a *Analyzer) FinancialScore() float64 {
	score := 0.0

	debtToEquity := a.DebtToEquity()
	switch {
	case debtToEquity == nil:
		score += 25
	case *debtToEquity > 2.0:
		score += 25
	case *debtToEquity > 1.0:
		score += 15
	case *debtToEquity > 0.5:
		score += 8
	}

	if currentRatio := a.CurrentRatio(); currentRatio != nil {
		switch {
		case *currentRatio < 1.0:
			score += 20
		case *currentRatio < 1.5:
			score += 10
		case *currentRatio < 2.0:
			score += 5
		}
	}

	if coverage := a.InterestCoverage(); coverage != nil {
		switch {
		case *coverage < 2.0:
			score += 25
		case *coverage < 5.0:
			score += 15
		case *coverage < 10.0:
			score += 8
		}
	}

	roe := a.ROE()
	switch {
	case roe < 0:
		score += 15
	case roe < 0.05:
		score += 10
	case roe < 0.10:
		score += 5
	}

	volatility := a.revenueVolatility()
	switch {
	case volatility > 0.30:
		score += 15
	case volatility > 0.15:
		score += 10
	case volatility > 0.10:
		score += 5
	}

	return min(score, 100)
}

// BusinessScore returns a 0-100 score from beta, sector riskiness, and
// company size
func (a *Analyzer) BusinessScore() float64 {
	score := 0.0

	beta := a.facts.Beta()
	switch {
	case beta > 2.0:
		score += 40
	case beta > 1.5:
		score += 30
	case beta > 1.2:
		score += 20
	case beta > 1.0:
		score += 10
	}

	sectorScore, ok := sectorRiskScores[a.facts.Sector]
	if !ok {
		sectorScore = defaultSectorRiskScore
	}
	score += sectorScore * 0.35

	// smaller companies carry more going-concern risk
	marketCap := a.facts.MarketCap()
	switch {
	case marketCap < 1e9:
		score += 25
	case marketCap < 5e9:
		score += 15
	case marketCap < 20e9:
		score += 8
	}

	return min(score, 100)
}

// ValuationScore returns a 0-100 score from how stretched the market
// multiples are
func (a *Analyzer) ValuationScore() float64 {
	score := 0.0

	if peRatio := a.PERatio(); peRatio != nil {
		switch {
		case *peRatio > 40:
			score += 40
		case *peRatio > 25:
			score += 30
		case *peRatio > 20:
			score += 20
		case *peRatio > 15:
			score += 10
		case *peRatio < 5:
			score += 15
		}
	} else {
		score += 20 // unprofitable, multiple undefined
	}

	if pbRatio := a.PBRatio(); pbRatio != nil {
		switch {
		case *pbRatio > 8:
			score += 30
		case *pbRatio > 5:
			score += 20
		case *pbRatio > 3:
			score += 10
		case *pbRatio < 0.5:
			score += 15
		}
	}

	if psRatio := a.PSRatio(); psRatio != nil {
		switch {
		case *psRatio > 10:
			score += 30
		case *psRatio > 5:
			score += 20
		case *psRatio > 3:
			score += 10
		}
	}

	return min(score, 100)
}
