package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// fallbackDurationMonths applies when a product carries no duration.
const fallbackDurationMonths = 12

var percentMonthsPerYear = decimal.NewFromInt(100 * 12)

// Interest is flat-rate interest on principal for the whole term:
// principal × rate/100 × months/12, rounded half-even to cents.
func Interest(principal, ratePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	return principal.
		Mul(ratePercent).
		Mul(decimal.NewFromInt(int64(months))).
		Div(percentMonthsPerYear).
		RoundBank(2)
}

// TotalPayable is what the borrower owes at disbursement.
func TotalPayable(principal, ratePercent decimal.Decimal, months int) decimal.Decimal {
	return principal.Add(Interest(principal, ratePercent, months))
}

// DueDate adds the loan term to the disbursement date. A missing term
// falls back to one year.
func DueDate(disbursed time.Time, months int) time.Time {
	if months <= 0 {
		months = fallbackDurationMonths
	}
	return AddMonthsClamped(disbursed, months)
}

// AddMonthsClamped adds calendar months, clamping the day to the last day of
// the target month (Jan 31 + 1 month = Feb 28, or Feb 29 in leap years).
func AddMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock from t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Open builds an ACTIVE loan for an approved application. The balance starts
// at the full amount payable (principal plus all interest).
func Open(applicationID uint64, principal, ratePercent decimal.Decimal, months int, disbursed time.Time) *Loan {
	total := TotalPayable(principal, ratePercent, months)
	return &Loan{
		ApplicationID:    applicationID,
		DisbursedAmount:  principal,
		InterestRate:     ratePercent,
		DurationMonths:   months,
		TotalPayable:     total,
		DisbursementDate: DateOf(disbursed),
		DueDate:          DueDate(disbursed, months),
		Balance:          total,
		Status:           StatusActive,
	}
}
