package mudra

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleInput() Input {
	return Input{
		BusinessName: "Sharma Snacks",
		Sector:       "food processing",
		FixedAssets: []FixedAsset{
			{Name: "Machinery", Amount: 300000, LifeYears: 10},
			{Name: "Furniture", Amount: 50000, LifeYears: 5},
		},
		MonthlyRent:          10000,
		MonthlyWages:         25000,
		MonthlyUtilities:     5000,
		MonthlyOther:         5000,
		RawMaterialPerUnit:   20,
		UnitsFullCapacity:    5000,
		SellingPrice:         50,
		Utilization:          [5]float64{0.6, 0.7, 0.8, 0.85, 0.9},
		WorkingCapitalMonths: 3,
		PromoterPct:          10,
		InterestRatePct:      11,
		TenureMonths:         60,
		InflationPct:         5,
		TaxRatePct:           25,
	}
}

func TestClassify_Tiers(t *testing.T) {
	assert.Equal(t, TierShishu, classify(48000))
	assert.Equal(t, TierShishu, classify(50000))
	assert.Equal(t, TierKishore, classify(250000))
	assert.Equal(t, TierKishore, classify(500000))
	assert.Equal(t, TierTarun, classify(700000))
}

func TestGenerate_ProjectCost(t *testing.T) {
	out := Generate(sampleInput())

	// monthly opex = 45,000 + 20*5000*0.6 = 105,000
	assert.Equal(t, 105000.0, out.ProjectCost.MonthlyOpex)
	// working capital = 315,000; subtotal 665,000; 5%+5% = 66,500
	assert.Equal(t, 315000.0, out.ProjectCost.WorkingCapital)
	assert.Equal(t, 731500.0, out.ProjectCost.Total)
	assert.Equal(t, TierTarun, out.Tier)
}

func TestGenerate_MeansOfFinance(t *testing.T) {
	out := Generate(sampleInput())

	assert.Equal(t, 73150.0, out.MeansOfFinance.PromoterContribution)
	assert.Equal(t, 658350.0, out.MeansOfFinance.LoanAmount)
}

func TestGenerate_ScheduleConsistency(t *testing.T) {
	out := Generate(sampleInput())

	assert.Len(t, out.LoanSchedule, 5)
	// Opening balance of year 1 is the loan amount.
	assert.InDelta(t, out.MeansOfFinance.LoanAmount, out.LoanSchedule[0].OpeningBalance, 0.01)
	// Each row closes at opening minus principal.
	for _, row := range out.LoanSchedule {
		assert.InDelta(t, row.OpeningBalance-row.Principal, row.ClosingBalance, 0.02)
	}
	// A 60-month loan is fully repaid at the end of year 5.
	assert.InDelta(t, 0, out.LoanSchedule[4].ClosingBalance, 0.01)
}

func TestGenerate_Depreciation(t *testing.T) {
	out := Generate(sampleInput())

	// 300000/10 + 50000/5 = 40,000 per year
	assert.Equal(t, 40000.0, out.ProfitAndLoss[0].Depreciation)
	assert.Equal(t, 200000.0, out.BalanceSheet[4].AccumulatedDep)
}

func TestGenerate_DefaultAssetLife(t *testing.T) {
	in := sampleInput()
	in.FixedAssets = []FixedAsset{{Name: "Machinery", Amount: 100000}}
	out := Generate(in)

	assert.Equal(t, 10000.0, out.ProfitAndLoss[0].Depreciation)
}

func TestGenerate_PnLYear1(t *testing.T) {
	out := Generate(sampleInput())
	y1 := out.ProfitAndLoss[0]

	// units = 5000*12*0.6 = 36,000; revenue = 1,800,000
	assert.Equal(t, 36000, y1.Units)
	assert.Equal(t, 1800000.0, y1.Revenue)
	// costs = 36000*20 + 45000*12 = 1,260,000 (no inflation in year 1)
	assert.Equal(t, 1260000.0, y1.Costs)
	assert.Equal(t, 540000.0, y1.EBITDA)
	assert.InDelta(t, y1.EBITDA-y1.Depreciation-y1.Interest, y1.PBT, 0.01)
	assert.InDelta(t, y1.PBT-y1.Tax, y1.PAT, 0.01)
}

func TestGenerate_DSCRAndBankability(t *testing.T) {
	out := Generate(sampleInput())

	assert.Len(t, out.DSCR, 5)
	for _, row := range out.DSCR {
		assert.NotEmpty(t, row.Rating)
	}
	assert.Equal(t, out.IsBankable, out.AverageDSCR >= 1.5)
	assert.NotEmpty(t, out.Recommendation)
}

func TestGenerate_BreakEven(t *testing.T) {
	out := Generate(sampleInput())

	assert.True(t, out.BreakEven.Achievable)
	assert.Equal(t, 30.0, out.BreakEven.ContributionPerUnit)
	assert.Greater(t, out.BreakEven.Units, 0)
	assert.Greater(t, out.BreakEven.Months, 0)
}

func TestGenerate_BreakEvenUnachievable(t *testing.T) {
	in := sampleInput()
	in.SellingPrice = 15 // below raw material cost
	out := Generate(in)

	assert.False(t, out.BreakEven.Achievable)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(sampleInput())
	b := Generate(sampleInput())

	if !reflect.DeepEqual(a, b) {
		t.Fatal("Expected identical outputs for identical inputs")
	}
}

func TestGenerate_IRRPositiveForProfitableProject(t *testing.T) {
	out := Generate(sampleInput())
	assert.Greater(t, out.IRRPct, 0.0)
}

func TestWhatIf_OverridesSellingPrice(t *testing.T) {
	base := Generate(sampleInput())

	out, err := WhatIf(sampleInput(), map[string]json.RawMessage{
		"selling_price": json.RawMessage("60"),
	})
	assert.NoError(t, err)
	assert.Greater(t, out.ProfitAndLoss[0].Revenue, base.ProfitAndLoss[0].Revenue)
}

func TestWhatIf_UnknownKeyIgnoredByDecode(t *testing.T) {
	out, err := WhatIf(sampleInput(), map[string]json.RawMessage{
		"nonexistent": json.RawMessage(`"x"`),
	})
	assert.NoError(t, err)
	assert.Equal(t, Generate(sampleInput()), out)
}

func TestComputeEMI_ZeroRate(t *testing.T) {
	emi := computeEMI(120000, 0, 12)
	assert.Equal(t, 10000.0, emi.EMI)
}
