package companies

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aristath/valuator/internal/domain"
)

// Ingestion errors
var (
	ErrCompanyNotFound = errors.New("company data file not found")
)

// Fields the latest period must carry for a meaningful valuation run.
// Anything beyond these degrades individual methods instead of failing.
var requiredLatestFields = []domain.Field{
	domain.FieldRevenue,
	domain.FieldNetIncome,
	domain.FieldTotalAssets,
	domain.FieldShareholdersEquity,
	domain.FieldFreeCashFlow,
}

// Validator checks that a decoded data file can support a valuation run
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a company data validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate returns the first structural problem found, nil when the facts
// are usable. Data errors here are hard failures: the core must never see
// a partially valid company.
func (v *Validator) Validate(facts *domain.CompanyFacts) error {
	if err := v.validate.Struct(facts); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			return fmt.Errorf("field %s fails constraint %q", first.Namespace(), first.Tag())
		}
		return err
	}

	latest := facts.FinancialHistory[facts.LatestPeriod()]
	for _, field := range requiredLatestFields {
		if _, ok := latest[field]; !ok {
			return fmt.Errorf("latest period missing required field %q", field)
		}
	}

	return nil
}
