package finmath

// TaxResult compares liability under both income tax regimes for FY 2024-25.
type TaxResult struct {
	OldRegimeTax   float64 `json:"old_regime_tax"`
	NewRegimeTax   float64 `json:"new_regime_tax"`
	Recommended    string  `json:"recommended"`
	AnnualIncome   float64 `json:"annual_income"`
	TaxableOld     float64 `json:"taxable_old"`
	TaxableNew     float64 `json:"taxable_new"`
}

type taxSlab struct {
	upTo float64 // 0 means no upper bound
	rate float64
}

// FY 2024-25 slabs
var oldRegimeSlabs = []taxSlab{
	{250000, 0},
	{500000, 0.05},
	{1000000, 0.20},
	{0, 0.30},
}

var newRegimeSlabs = []taxSlab{
	{300000, 0},
	{700000, 0.05},
	{1000000, 0.10},
	{1200000, 0.15},
	{1500000, 0.20},
	{0, 0.30},
}

func slabTax(taxable float64, slabs []taxSlab) float64 {
	tax := 0.0
	prev := 0.0
	for _, s := range slabs {
		upper := s.upTo
		if upper == 0 || taxable < upper {
			upper = taxable
		}
		if upper > prev {
			tax += (upper - prev) * s.rate
		}
		if s.upTo == 0 || taxable <= s.upTo {
			break
		}
		prev = s.upTo
	}
	return tax
}

// IncomeTax computes FY 2024-25 liability under the old regime (with the
// supplied deductions and a 50,000 standard deduction) and the new regime
// (75,000 standard deduction, no other deductions), applying the section
// 87A rebate and 4% cess to each.
func IncomeTax(annualIncome, deductions float64) TaxResult {
	taxableOld := annualIncome - 50000 - deductions
	if taxableOld < 0 {
		taxableOld = 0
	}
	taxableNew := annualIncome - 75000
	if taxableNew < 0 {
		taxableNew = 0
	}

	oldTax := slabTax(taxableOld, oldRegimeSlabs)
	newTax := slabTax(taxableNew, newRegimeSlabs)

	// Section 87A rebate
	if taxableOld <= 500000 {
		oldTax = 0
	}
	if taxableNew <= 700000 {
		newTax = 0
	}

	// Health and education cess
	oldTax *= 1.04
	newTax *= 1.04

	recommended := "new"
	if oldTax < newTax {
		recommended = "old"
	}

	return TaxResult{
		OldRegimeTax: round2(oldTax),
		NewRegimeTax: round2(newTax),
		Recommended:  recommended,
		AnnualIncome: round2(annualIncome),
		TaxableOld:   round2(taxableOld),
		TaxableNew:   round2(taxableNew),
	}
}
