package calculators

// Fair P/E multiples by sector. Unknown sectors fall back to the default in
// Heuristics (16x).
var sectorPEMultiples = map[string]float64{
	"Technology":             22.0,
	"Healthcare":             18.0,
	"Consumer Discretionary": 20.0,
	"Communication Services": 16.0,
	"Industrials":            16.0,
	"Consumer Staples":       18.0,
	"Financials":             12.0,
	"Financial Services":     12.0,
	"Energy":                 14.0,
	"Materials":              15.0,
	"Basic Materials":        15.0,
	"Utilities":              16.0,
	"Real Estate":            20.0,
	"Biotechnology":          25.0,
}

// Fair EV/EBITDA multiples by sector. Unknown sectors fall back to the
// default in Heuristics (12x).
var sectorEVEBITDAMultiples = map[string]float64{
	"Technology":             15.0,
	"Healthcare":             14.0,
	"Consumer Discretionary": 12.0,
	"Communication Services": 10.0,
	"Industrials":            11.0,
	"Consumer Staples":       12.0,
	"Financials":             8.0, // banks are usually valued on P/E instead
	"Financial Services":     8.0,
	"Energy":                 8.0,
	"Materials":              9.0,
	"Basic Materials":        9.0,
	"Utilities":              10.0,
	"Real Estate":            16.0,
	"Biotechnology":          18.0,
}

// SectorPEMultiple returns the fair P/E for a sector
func SectorPEMultiple(sector string, def float64) float64 {
	if m, ok := sectorPEMultiples[sector]; ok {
		return m
	}
	return def
}

// SectorEVEBITDAMultiple returns the fair EV/EBITDA for a sector
func SectorEVEBITDAMultiple(sector string, def float64) float64 {
	if m, ok := sectorEVEBITDAMultiples[sector]; ok {
		return m
	}
	return def
}
