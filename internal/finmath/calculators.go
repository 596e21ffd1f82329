// Package finmath implements the closed-form retail finance calculators.
// All functions are pure; monetary outputs are rounded to 2 decimals.
package finmath

import "math"

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SIPResult is the outcome of a systematic investment plan projection.
type SIPResult struct {
	FutureValue   float64 `json:"future_value"`
	TotalInvested float64 `json:"total_invested"`
	WealthGained  float64 `json:"wealth_gained"`
}

// SIP computes the future value of a monthly SIP with annuity-due
// compounding: FV = P × ((1+r)^n − 1)/r × (1+r), r = annual rate / 1200.
func SIP(monthlyInvestment, annualRatePct float64, durationMonths int) SIPResult {
	n := float64(durationMonths)
	invested := monthlyInvestment * n

	r := annualRatePct / 1200
	fv := invested
	if r > 0 {
		fv = monthlyInvestment * (math.Pow(1+r, n) - 1) / r * (1 + r)
	}

	return SIPResult{
		FutureValue:   round2(fv),
		TotalInvested: round2(invested),
		WealthGained:  round2(fv - invested),
	}
}

// GoalSIP inverts SIP: the monthly investment needed to reach target in n months.
func GoalSIP(targetAmount, annualRatePct float64, durationMonths int) SIPResult {
	n := float64(durationMonths)
	r := annualRatePct / 1200

	monthly := targetAmount / n
	if r > 0 {
		monthly = targetAmount * r / ((math.Pow(1+r, n) - 1) * (1 + r))
	}
	invested := monthly * n

	return SIPResult{
		FutureValue:   round2(monthly),
		TotalInvested: round2(invested),
		WealthGained:  round2(targetAmount - invested),
	}
}

// EMIResult is the outcome of a reducing-balance loan amortization.
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// EMI computes the standard reducing-balance EMI. A zero rate degrades to
// straight principal division.
func EMI(principal, annualRatePct float64, tenureMonths int) EMIResult {
	n := float64(tenureMonths)
	r := annualRatePct / 1200

	emi := principal / n
	if r > 0 {
		f := math.Pow(1+r, n)
		emi = principal * r * f / (f - 1)
	}
	total := emi * n

	return EMIResult{
		EMI:           round2(emi),
		TotalPayment:  round2(total),
		TotalInterest: round2(total - principal),
	}
}

// FDResult is the outcome of a fixed-deposit projection.
type FDResult struct {
	MaturityAmount float64 `json:"maturity_amount"`
	Principal      float64 `json:"principal"`
	InterestEarned float64 `json:"interest_earned"`
}

// FD computes fixed-deposit maturity with quarterly compounding.
func FD(principal, annualRatePct, years float64) FDResult {
	maturity := principal * math.Pow(1+annualRatePct/400, 4*years)
	return FDResult{
		MaturityAmount: round2(maturity),
		Principal:      round2(principal),
		InterestEarned: round2(maturity - principal),
	}
}

// RDResult is the outcome of a recurring-deposit projection.
type RDResult struct {
	MaturityAmount float64 `json:"maturity_amount"`
	TotalDeposited float64 `json:"total_deposited"`
	InterestEarned float64 `json:"interest_earned"`
}

// RD computes recurring-deposit maturity, compounding each monthly
// installment quarterly for its remaining term.
func RD(monthlyDeposit, annualRatePct float64, months int) RDResult {
	deposited := monthlyDeposit * float64(months)

	maturity := 0.0
	for m := 0; m < months; m++ {
		remainingYears := float64(months-m) / 12
		maturity += monthlyDeposit * math.Pow(1+annualRatePct/400, 4*remainingYears)
	}

	return RDResult{
		MaturityAmount: round2(maturity),
		TotalDeposited: round2(deposited),
		InterestEarned: round2(maturity - deposited),
	}
}

// LumpsumResult is the outcome of a one-time investment projection.
type LumpsumResult struct {
	FutureValue  float64 `json:"future_value"`
	Invested     float64 `json:"invested"`
	WealthGained float64 `json:"wealth_gained"`
}

// Lumpsum grows a one-time investment at an annual rate for y years.
func Lumpsum(amount, annualRatePct, years float64) LumpsumResult {
	fv := amount * math.Pow(1+annualRatePct/100, years)
	return LumpsumResult{
		FutureValue:  round2(fv),
		Invested:     round2(amount),
		WealthGained: round2(fv - amount),
	}
}

// CAGR returns the compound annual growth rate as a percentage.
func CAGR(initialValue, finalValue, years float64) float64 {
	if initialValue <= 0 || years <= 0 {
		return 0
	}
	return round2((math.Pow(finalValue/initialValue, 1/years) - 1) * 100)
}

// CompoundInterestResult is the outcome of a compound interest projection.
type CompoundInterestResult struct {
	Amount         float64 `json:"amount"`
	Principal      float64 `json:"principal"`
	InterestEarned float64 `json:"interest_earned"`
}

// CompoundInterest computes A = P(1 + r/(100n))^(n·t) for n compounding
// periods per year.
func CompoundInterest(principal, annualRatePct, years float64, compoundsPerYear int) CompoundInterestResult {
	if compoundsPerYear <= 0 {
		compoundsPerYear = 1
	}
	n := float64(compoundsPerYear)
	amount := principal * math.Pow(1+annualRatePct/(100*n), n*years)
	return CompoundInterestResult{
		Amount:         round2(amount),
		Principal:      round2(principal),
		InterestEarned: round2(amount - principal),
	}
}

// EmergencyFund returns the recommended emergency corpus. Months defaults
// to 6 when non-positive.
func EmergencyFund(monthlyExpenses float64, months int) float64 {
	if months <= 0 {
		months = 6
	}
	return round2(monthlyExpenses * float64(months))
}

// SavingsRate returns savings as a percentage of income.
func SavingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return round2((income - expenses) / income * 100)
}
