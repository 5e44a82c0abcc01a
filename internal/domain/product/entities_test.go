package product

import (
	"errors"
	"testing"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

func validProduct() Product {
	return Product{
		Name:               "Biashara Boost",
		InterestRate:       decimal.RequireFromString("12.50"),
		DurationMonths:     6,
		RepaymentFrequency: FrequencyMonthly,
		MaxAmount:          decimal.RequireFromString("500000"),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Product)
		field  string
	}{
		{"valid", func(*Product) {}, ""},
		{"missing name", func(p *Product) { p.Name = "" }, "name"},
		{"negative rate", func(p *Product) { p.InterestRate = decimal.NewFromInt(-1) }, "interest_rate"},
		{"rate over 100", func(p *Product) { p.InterestRate = decimal.RequireFromString("100.01") }, "interest_rate"},
		{"rate three decimals", func(p *Product) { p.InterestRate = decimal.RequireFromString("12.125") }, "interest_rate"},
		{"zero duration", func(p *Product) { p.DurationMonths = 0 }, "duration_months"},
		{"bad frequency", func(p *Product) { p.RepaymentFrequency = "DAILY" }, "repayment_frequency"},
		{"zero max", func(p *Product) { p.MaxAmount = decimal.Zero }, "max_amount"},
		{"max sub-cent", func(p *Product) { p.MaxAmount = decimal.RequireFromString("10.001") }, "max_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
			if got := apperr.FieldOf(err); got != tt.field {
				t.Fatalf("field = %q, want %q", got, tt.field)
			}
		})
	}
}
