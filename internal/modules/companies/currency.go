package companies

import (
	"encoding/json"

	"github.com/aristath/valuator/internal/domain"
)

// exchangeRate tolerates both file formats: a bare number, or an object
// like {"dkkToUsd": 0.1449}
type exchangeRate struct {
	Rate float64
}

func (e *exchangeRate) UnmarshalJSON(data []byte) error {
	var direct float64
	if err := json.Unmarshal(data, &direct); err == nil {
		e.Rate = direct
		return nil
	}

	rates := map[string]float64{}
	if err := json.Unmarshal(data, &rates); err != nil {
		return err
	}
	for _, rate := range rates {
		e.Rate = rate
		break
	}
	return nil
}

// normalizeCurrency converts all financial-statement values to USD in
// place. Data already in USD, or without a usable rate, passes through
// untouched. Market data is quoted in the listing currency and is not
// converted.
func normalizeCurrency(facts *domain.CompanyFacts, rate *exchangeRate) {
	if facts.Currency == "" || facts.Currency == "USD" {
		return
	}
	if rate == nil || rate.Rate <= 0 {
		return
	}

	for _, period := range facts.FinancialHistory {
		for field, value := range period {
			period[field] = value * rate.Rate
		}
	}

	if di := facts.DividendInfo; di != nil && di.CurrentAnnualDividend != nil {
		converted := *di.CurrentAnnualDividend * rate.Rate
		di.CurrentAnnualDividend = &converted
	}

	facts.Currency = "USD"
}
