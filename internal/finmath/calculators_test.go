package finmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSIP_KnownValues(t *testing.T) {
	// 10,000/month at 12% for 120 months
	r := SIP(10000, 12, 120)

	assert.InDelta(t, 2323391, r.FutureValue, 1)
	assert.Equal(t, 1200000.0, r.TotalInvested)
	assert.InDelta(t, 1123391, r.WealthGained, 1)
}

func TestSIP_ZeroRate(t *testing.T) {
	r := SIP(1000, 0, 12)
	assert.Equal(t, 12000.0, r.FutureValue)
	assert.Equal(t, 0.0, r.WealthGained)
}

func TestGoalSIP_RoundTripsWithSIP(t *testing.T) {
	goal := SIP(5000, 10, 60).FutureValue
	r := GoalSIP(goal, 10, 60)
	assert.InDelta(t, 5000, r.FutureValue, 0.5)
}

func TestEMI_KnownValues(t *testing.T) {
	// 10 lakh at 9% for 20 years
	r := EMI(1000000, 9, 240)

	assert.InDelta(t, 8997.26, r.EMI, 0.01)
	assert.InDelta(t, 2159344, r.TotalPayment, 1)
	assert.InDelta(t, 1159344, r.TotalInterest, 1)
}

func TestEMI_ZeroRate(t *testing.T) {
	r := EMI(120000, 0, 12)
	assert.Equal(t, 10000.0, r.EMI)
	assert.Equal(t, 0.0, r.TotalInterest)
}

func TestFD_QuarterlyCompounding(t *testing.T) {
	r := FD(100000, 8, 1)
	// 100000 * (1.02)^4
	assert.InDelta(t, 108243.22, r.MaturityAmount, 0.01)
}

func TestRD_MaturityExceedsDeposits(t *testing.T) {
	r := RD(5000, 7, 24)
	assert.Equal(t, 120000.0, r.TotalDeposited)
	assert.Greater(t, r.MaturityAmount, r.TotalDeposited)
	assert.InDelta(t, r.MaturityAmount-r.TotalDeposited, r.InterestEarned, 0.01)
}

func TestCAGR(t *testing.T) {
	assert.InDelta(t, 14.87, CAGR(100000, 200000, 5), 0.01)
	assert.Equal(t, 0.0, CAGR(0, 200000, 5))
}

func TestLumpsum(t *testing.T) {
	r := Lumpsum(100000, 12, 10)
	assert.InDelta(t, 310584.82, r.FutureValue, 0.01)
}

func TestCompoundInterest_AnnualVsMonthly(t *testing.T) {
	annual := CompoundInterest(10000, 10, 5, 1)
	monthly := CompoundInterest(10000, 10, 5, 12)

	assert.InDelta(t, 16105.10, annual.Amount, 0.01)
	assert.Greater(t, monthly.Amount, annual.Amount)
}

func TestEmergencyFund_DefaultsToSixMonths(t *testing.T) {
	assert.Equal(t, 180000.0, EmergencyFund(30000, 0))
	assert.Equal(t, 90000.0, EmergencyFund(30000, 3))
}

func TestSavingsRate(t *testing.T) {
	assert.Equal(t, 25.0, SavingsRate(100000, 75000))
	assert.Equal(t, 0.0, SavingsRate(0, 100))
}

func TestIncomeTax_RebateBelowThreshold(t *testing.T) {
	r := IncomeTax(500000, 0)
	// New regime: taxable 425,000 ≤ 7L, fully rebated
	assert.Equal(t, 0.0, r.NewRegimeTax)
	// Old regime: taxable 450,000 ≤ 5L, fully rebated
	assert.Equal(t, 0.0, r.OldRegimeTax)
}

func TestIncomeTax_HighIncome(t *testing.T) {
	r := IncomeTax(2000000, 150000)

	// Old: taxable 18L → 12500 + 100000 + 240000 = 352500, +4% cess
	assert.InDelta(t, 366600, r.OldRegimeTax, 1)
	// New: taxable 19.25L → 20000+30000+30000+60000+127500 = 267500, +4% cess
	assert.InDelta(t, 278200, r.NewRegimeTax, 1)
	assert.Equal(t, "new", r.Recommended)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, round2(2.346))
	assert.Equal(t, 2.34, round2(2.344))
	assert.True(t, math.Abs(round2(-1.555)+1.55) < 0.02)
}
