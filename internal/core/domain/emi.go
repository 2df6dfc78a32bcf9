package domain

import "github.com/shopspring/decimal"

// EMIResult is a monthly installment breakdown.
type EMIResult struct {
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal
	Months        int
	EMI           decimal.Decimal
	TotalPayment  decimal.Decimal
	TotalInterest decimal.Decimal
}

// Calculator bounds. Tenure also caps the exponent of the exact decimal power.
const (
	MaxTenureYears = 40
	MaxPrincipal   = 1e11
	MaxAnnualRate  = 100
)

var (
	twelveHundred = decimal.NewFromInt(1200)
	one           = decimal.NewFromInt(1)
)

// CalculateEMI computes the rounded monthly installment of a reducing-balance
// loan: P*r*(1+r)^n / ((1+r)^n - 1) with r = rate/1200 and n = years*12.
func CalculateEMI(principal, annualRatePercent float64, tenureYears int) (EMIResult, error) {
	if principal <= 0 || principal > MaxPrincipal ||
		annualRatePercent < 0 || annualRatePercent > MaxAnnualRate ||
		tenureYears <= 0 || tenureYears > MaxTenureYears {
		return EMIResult{}, ErrInvalidInput
	}

	p := decimal.NewFromFloat(principal)
	rate := decimal.NewFromFloat(annualRatePercent)
	n := tenureYears * 12

	var emi decimal.Decimal
	if rate.IsZero() {
		emi = p.Div(decimal.NewFromInt(int64(n))).Round(0)
	} else {
		r := rate.Div(twelveHundred)
		growth := one.Add(r).Pow(decimal.NewFromInt(int64(n)))
		emi = p.Mul(r).Mul(growth).Div(growth.Sub(one)).Round(0)
	}

	total := emi.Mul(decimal.NewFromInt(int64(n)))
	return EMIResult{
		Principal:     p,
		AnnualRate:    rate,
		Months:        n,
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total.Sub(p),
	}, nil
}

// CommissionAmount returns loanAmount * ratePercent / 100 rounded to two places.
func CommissionAmount(loanAmount, ratePercent float64) float64 {
	amount := decimal.NewFromFloat(loanAmount).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := amount.Float64()
	return f
}
