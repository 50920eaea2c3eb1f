package calculators

import (
	"testing"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

func relativeCalculator(t *testing.T, facts *domain.CompanyFacts) *RelativeCalculator {
	t.Helper()
	return NewRelativeCalculator(facts, config.DefaultHeuristics())
}

func TestPEUsesSectorMultiple(t *testing.T) {
	result := relativeCalculator(t, techFacts(t)).PE()

	if result.NotApplicable {
		t.Fatalf("PE() not applicable: %s", result.Reason)
	}
	// EPS 60 at the 22x technology multiple
	if want := 60.0 * 22.0; !approxEqual(result.ValuePerShare, want, 1e-6) {
		t.Errorf("PE() value = %v, want %v", result.ValuePerShare, want)
	}
	if got := result.Assumptions["currentPE"]; !approxEqual(got, 100.0/60.0, 1e-9) {
		t.Errorf("current P/E = %v, want %v", got, 100.0/60.0)
	}
}

func TestPEPrefersProvidedBenchmark(t *testing.T) {
	averagePE := 30.0
	facts := techFacts(t)
	facts.IndustryBenchmarks = &domain.IndustryBenchmarks{AveragePE: &averagePE}

	result := relativeCalculator(t, facts).PE()
	if want := 60.0 * 30.0; !approxEqual(result.ValuePerShare, want, 1e-6) {
		t.Errorf("PE() value = %v, want %v from provided benchmark", result.ValuePerShare, want)
	}
}

func TestPEFallsBackToDefaultMultiple(t *testing.T) {
	facts := techFacts(t)
	facts.Sector = "Shipping"

	result := relativeCalculator(t, facts).PE()
	if want := 60.0 * config.DefaultHeuristics().DefaultPEMultiple; !approxEqual(result.ValuePerShare, want, 1e-6) {
		t.Errorf("PE() value = %v, want %v for unknown sector", result.ValuePerShare, want)
	}
}

func TestPENotApplicableForUnprofitableCompany(t *testing.T) {
	facts := techFacts(t)
	facts.FinancialHistory["2023"][domain.FieldNetIncome] = -1e7

	if result := relativeCalculator(t, facts).PE(); !result.NotApplicable {
		t.Error("PE() applicable, want not applicable for negative earnings")
	}
}

func TestEVEBITDAEstimatesFromOperatingIncome(t *testing.T) {
	result := relativeCalculator(t, techFacts(t)).EVEBITDA()

	if result.NotApplicable {
		t.Fatalf("EVEBITDA() not applicable: %s", result.Reason)
	}
	// EBITDA 80M * 1.15 = 92M, fair EV 92M * 15 = 1.38B,
	// equity = 1.38B - 50M debt + 20M cash = 1.35B over 1M shares
	if want := 1350.0; !approxEqual(result.ValuePerShare, want, 1e-6) {
		t.Errorf("EVEBITDA() value = %v, want %v", result.ValuePerShare, want)
	}
	if got := result.Assumptions["ebitda"]; !approxEqual(got, 9.2e7, 1e-3) {
		t.Errorf("estimated EBITDA = %v, want 9.2e7", got)
	}
}

func TestEVEBITDAPrefersReportedEBITDA(t *testing.T) {
	facts := techFacts(t)
	facts.FinancialHistory["2023"][domain.FieldEBITDA] = 1.0e8

	result := relativeCalculator(t, facts).EVEBITDA()
	if got := result.Assumptions["ebitda"]; got != 1.0e8 {
		t.Errorf("EBITDA = %v, want reported 1.0e8", got)
	}
}

func TestEVEBITDANotApplicableWithoutOperatingIncome(t *testing.T) {
	facts := techFacts(t)
	delete(facts.FinancialHistory["2023"], domain.FieldOperatingIncome)

	if result := relativeCalculator(t, facts).EVEBITDA(); !result.NotApplicable {
		t.Error("EVEBITDA() applicable, want not applicable without EBITDA inputs")
	}
}
