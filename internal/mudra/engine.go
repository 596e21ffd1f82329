package mudra

import (
	"encoding/json"
	"math"
)

const (
	defaultAssetLife    = 10
	projectionYears     = 5
	preliminaryPct      = 0.05
	contingencyPct      = 0.05
	bankableDSCR        = 1.5
	shishuLimit         = 50000
	kishoreLimit        = 500000
	irrGuess            = 0.1
	irrIterations       = 200
	irrTolerance        = 1e-7
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Generate runs the full DPR pipeline. It is deterministic: equal inputs
// produce equal outputs.
func Generate(in Input) Output {
	in = withDefaults(in)

	cost := computeProjectCost(in)
	tier := classify(cost.Total)

	promoter := cost.Total * in.PromoterPct / 100
	loan := cost.Total - promoter
	finance := MeansOfFinance{
		PromoterContribution: round2(promoter),
		LoanAmount:           round2(loan),
	}

	emi := computeEMI(loan, in.InterestRatePct, in.TenureMonths)
	schedule := buildLoanSchedule(loan, emi.EMI, in.InterestRatePct, in.TenureMonths)

	yearlyDep := annualDepreciation(in.FixedAssets)
	pnl := buildPnL(in, yearlyDep, schedule)
	bs := buildBalanceSheet(in, cost, finance, yearlyDep, schedule, pnl)

	dscr, avgDSCR := buildDSCR(pnl, schedule)
	irr := computeIRR(cost.Total, pnl, yearlyDep)
	breakEven := computeBreakEven(in, yearlyDep, schedule)

	bankable := avgDSCR >= bankableDSCR

	return Output{
		ProjectCost:    cost,
		Tier:           tier,
		MeansOfFinance: finance,
		EMI:            emi,
		LoanSchedule:   schedule,
		ProfitAndLoss:  pnl,
		BalanceSheet:   bs,
		DSCR:           dscr,
		AverageDSCR:    round2(avgDSCR),
		IRRPct:         irr,
		BreakEven:      breakEven,
		IsBankable:     bankable,
		Recommendation: recommendation(avgDSCR),
	}
}

// WhatIf applies a shallow override map to the input and re-runs the
// whole pipeline.
func WhatIf(in Input, overrides map[string]json.RawMessage) (Output, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return Output{}, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return Output{}, err
	}
	for k, v := range overrides {
		m[k] = v
	}
	merged, err := json.Marshal(m)
	if err != nil {
		return Output{}, err
	}
	var next Input
	if err := json.Unmarshal(merged, &next); err != nil {
		return Output{}, err
	}
	return Generate(next), nil
}

func withDefaults(in Input) Input {
	if in.WorkingCapitalMonths <= 0 {
		in.WorkingCapitalMonths = 3
	}
	if in.TenureMonths <= 0 {
		in.TenureMonths = 60
	}
	zero := true
	for _, u := range in.Utilization {
		if u > 0 {
			zero = false
			break
		}
	}
	if zero {
		in.Utilization = [5]float64{0.6, 0.7, 0.8, 0.85, 0.9}
	}
	return in
}

func computeProjectCost(in Input) ProjectCost {
	totalFixed := 0.0
	for _, a := range in.FixedAssets {
		totalFixed += a.Amount
	}

	monthlyOpex := in.MonthlyRent + in.MonthlyWages + in.MonthlyUtilities + in.MonthlyOther +
		in.RawMaterialPerUnit*in.UnitsFullCapacity*in.Utilization[0]
	workingCapital := monthlyOpex * float64(in.WorkingCapitalMonths)

	subtotal := totalFixed + workingCapital
	preliminary := subtotal * preliminaryPct
	contingency := subtotal * contingencyPct

	return ProjectCost{
		TotalFixedAssets:    round2(totalFixed),
		MonthlyOpex:         round2(monthlyOpex),
		WorkingCapital:      round2(workingCapital),
		PreliminaryExpenses: round2(preliminary),
		Contingency:         round2(contingency),
		Total:               round2(subtotal + preliminary + contingency),
	}
}

func classify(totalCost float64) string {
	switch {
	case totalCost <= shishuLimit:
		return TierShishu
	case totalCost <= kishoreLimit:
		return TierKishore
	default:
		return TierTarun
	}
}

func computeEMI(loan, annualRatePct float64, tenureMonths int) EMIDetails {
	n := float64(tenureMonths)
	r := annualRatePct / 1200

	emi := loan / n
	if r > 0 {
		f := math.Pow(1+r, n)
		emi = loan * r * f / (f - 1)
	}
	total := emi * n

	return EMIDetails{
		EMI:           round2(emi),
		TotalPayment:  round2(total),
		TotalInterest: round2(total - loan),
	}
}

// buildLoanSchedule simulates the loan month by month and folds the
// result into five yearly rows.
func buildLoanSchedule(loan, emi, annualRatePct float64, tenureMonths int) []LoanScheduleRow {
	r := annualRatePct / 1200
	balance := loan
	month := 0

	rows := make([]LoanScheduleRow, 0, projectionYears)
	for y := 1; y <= projectionYears; y++ {
		opening := balance
		yearInterest := 0.0
		yearPrincipal := 0.0
		for m := 0; m < 12; m++ {
			month++
			if month > tenureMonths || balance <= 0 {
				break
			}
			interest := balance * r
			principal := math.Min(emi-interest, balance)
			if principal < 0 {
				principal = 0
			}
			balance -= principal
			yearInterest += interest
			yearPrincipal += principal
		}
		rows = append(rows, LoanScheduleRow{
			Year:           y,
			OpeningBalance: round2(opening),
			Interest:       round2(yearInterest),
			Principal:      round2(yearPrincipal),
			ClosingBalance: round2(balance),
		})
	}
	return rows
}

func annualDepreciation(assets []FixedAsset) float64 {
	dep := 0.0
	for _, a := range assets {
		life := a.LifeYears
		if life <= 0 {
			life = defaultAssetLife
		}
		dep += a.Amount / float64(life)
	}
	return dep
}

func buildPnL(in Input, yearlyDep float64, schedule []LoanScheduleRow) []PnLRow {
	rows := make([]PnLRow, 0, projectionYears)
	for y := 1; y <= projectionYears; y++ {
		inflation := math.Pow(1+in.InflationPct/100, float64(y-1))
		units := in.UnitsFullCapacity * 12 * in.Utilization[y-1]
		revenue := units * in.SellingPrice
		costs := units*in.RawMaterialPerUnit*inflation +
			(in.MonthlyRent+in.MonthlyWages+in.MonthlyUtilities+in.MonthlyOther)*12*inflation

		ebitda := revenue - costs
		interest := schedule[y-1].Interest
		pbt := ebitda - yearlyDep - interest
		tax := math.Max(0, pbt*in.TaxRatePct/100)
		pat := pbt - tax

		rows = append(rows, PnLRow{
			Year:         y,
			Units:        int(math.Round(units)),
			Revenue:      round2(revenue),
			Costs:        round2(costs),
			EBITDA:       round2(ebitda),
			Depreciation: round2(yearlyDep),
			Interest:     round2(interest),
			PBT:          round2(pbt),
			Tax:          round2(tax),
			PAT:          round2(pat),
		})
	}
	return rows
}

func buildBalanceSheet(in Input, cost ProjectCost, finance MeansOfFinance, yearlyDep float64, schedule []LoanScheduleRow, pnl []PnLRow) []BalanceSheetRow {
	rows := make([]BalanceSheetRow, 0, projectionYears)
	cumulativePAT := 0.0
	for y := 1; y <= projectionYears; y++ {
		cumulativePAT += pnl[y-1].PAT
		accumulated := yearlyDep * float64(y)
		netFixed := cost.TotalFixedAssets - accumulated
		currentAssets := cost.WorkingCapital + math.Max(0, cumulativePAT)

		rows = append(rows, BalanceSheetRow{
			Year:             y,
			GrossFixed:       round2(cost.TotalFixedAssets),
			AccumulatedDep:   round2(accumulated),
			NetFixed:         round2(netFixed),
			CurrentAssets:    round2(currentAssets),
			TotalAssets:      round2(netFixed + currentAssets),
			LoanOutstanding:  schedule[y-1].ClosingBalance,
			PromoterEquity:   finance.PromoterContribution,
			RetainedEarnings: round2(cumulativePAT),
		})
	}
	return rows
}

func buildDSCR(pnl []PnLRow, schedule []LoanScheduleRow) ([]DSCRRow, float64) {
	rows := make([]DSCRRow, 0, projectionYears)
	sum := 0.0
	finite := 0
	for y := 1; y <= projectionYears; y++ {
		service := schedule[y-1].Principal + schedule[y-1].Interest
		available := pnl[y-1].PAT + pnl[y-1].Depreciation + pnl[y-1].Interest

		dscr := math.Inf(1)
		if service > 0 {
			dscr = available / service
			sum += dscr
			finite++
		}

		row := DSCRRow{Year: y, Rating: dscrRating(dscr)}
		if !math.IsInf(dscr, 1) {
			row.DSCR = round2(dscr)
		}
		rows = append(rows, row)
	}

	avg := 0.0
	if finite > 0 {
		avg = sum / float64(finite)
	}
	return rows, avg
}

func dscrRating(dscr float64) string {
	switch {
	case dscr >= 2.0:
		return "Excellent"
	case dscr >= 1.5:
		return "Good"
	case dscr >= 1.25:
		return "Marginal"
	case dscr >= 1.0:
		return "Weak"
	default:
		return "Poor"
	}
}

// computeIRR runs Newton-Raphson on
// NPV(r) = -total + Σ (PAT_y + Dep_y)/(1+r)^y and returns a percentage.
func computeIRR(totalCost float64, pnl []PnLRow, yearlyDep float64) float64 {
	npv := func(r float64) float64 {
		v := -totalCost
		for y := 1; y <= len(pnl); y++ {
			v += (pnl[y-1].PAT + yearlyDep) / math.Pow(1+r, float64(y))
		}
		return v
	}
	dnpv := func(r float64) float64 {
		v := 0.0
		for y := 1; y <= len(pnl); y++ {
			v -= float64(y) * (pnl[y-1].PAT + yearlyDep) / math.Pow(1+r, float64(y+1))
		}
		return v
	}

	r := irrGuess
	for i := 0; i < irrIterations; i++ {
		f := npv(r)
		if math.Abs(f) < irrTolerance {
			break
		}
		d := dnpv(r)
		if d == 0 || math.IsNaN(d) {
			return 0
		}
		next := r - f/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			return 0
		}
		r = next
	}
	return round2(r * 100)
}

func computeBreakEven(in Input, yearlyDep float64, schedule []LoanScheduleRow) BreakEven {
	fixed := (in.MonthlyRent+in.MonthlyWages+in.MonthlyUtilities+in.MonthlyOther)*12 +
		yearlyDep + schedule[0].Interest
	contribution := in.SellingPrice - in.RawMaterialPerUnit

	if contribution <= 0 {
		return BreakEven{
			Achievable:          false,
			FixedCosts:          round2(fixed),
			ContributionPerUnit: round2(contribution),
		}
	}

	units := fixed / contribution
	monthlyCapacity := in.UnitsFullCapacity * in.Utilization[0]
	months := 0
	if monthlyCapacity > 0 {
		months = int(math.Ceil(units / monthlyCapacity))
	}

	return BreakEven{
		Achievable:          true,
		Units:               int(math.Ceil(units)),
		Revenue:             round2(units * in.SellingPrice),
		Months:              months,
		FixedCosts:          round2(fixed),
		ContributionPerUnit: round2(contribution),
	}
}

func recommendation(avgDSCR float64) string {
	switch {
	case avgDSCR >= 2.0:
		return "Strong proposal. Debt service coverage is excellent; the bank should view this favourably."
	case avgDSCR >= bankableDSCR:
		return "Bankable proposal. Coverage meets the typical lending threshold of 1.5."
	case avgDSCR >= 1.25:
		return "Marginal proposal. Consider a higher promoter contribution or a longer tenure to improve coverage."
	case avgDSCR >= 1.0:
		return "Weak proposal. Cash flows barely cover debt service; restructure costs before applying."
	default:
		return "Not bankable in current form. Projected cash flows do not cover debt service."
	}
}
