// Package mudra implements the deterministic Mudra loan project
// calculator: project cost, tier classification, amortization, five-year
// P&L and balance-sheet projections, DSCR, IRR and break-even.
package mudra

// FixedAsset is one capital purchase of the project.
type FixedAsset struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	LifeYears int     `json:"life_years,omitempty"` // straight-line life; 10 when missing
}

// Input is the complete project description the engine consumes.
type Input struct {
	BusinessName string       `json:"business_name"`
	Sector       string       `json:"sector,omitempty"`
	FixedAssets  []FixedAsset `json:"fixed_assets"`

	// Monthly operating costs
	MonthlyRent      float64 `json:"monthly_rent"`
	MonthlyWages     float64 `json:"monthly_wages"`
	MonthlyUtilities float64 `json:"monthly_utilities"`
	MonthlyOther     float64 `json:"monthly_other"`

	// Production economics
	RawMaterialPerUnit float64 `json:"raw_material_per_unit"`
	UnitsFullCapacity  float64 `json:"units_full_capacity"` // per month
	SellingPrice       float64 `json:"selling_price"`

	// Capacity utilization for years 1..5, as fractions (0.6 = 60%).
	Utilization [5]float64 `json:"utilization"`

	WorkingCapitalMonths int     `json:"working_capital_months"`
	PromoterPct          float64 `json:"promoter_pct"`    // promoter contribution, % of project cost
	InterestRatePct      float64 `json:"interest_rate"`   // annual
	TenureMonths         int     `json:"tenure_months"`
	InflationPct         float64 `json:"inflation_pct"`   // annual cost inflation
	TaxRatePct           float64 `json:"tax_rate"`
}

// Mudra loan tiers by total project cost.
const (
	TierShishu  = "SHISHU"
	TierKishore = "KISHORE"
	TierTarun   = "TARUN"
)

// ProjectCost is the step-1 cost build-up.
type ProjectCost struct {
	TotalFixedAssets    float64 `json:"total_fixed_assets"`
	MonthlyOpex         float64 `json:"monthly_opex"`
	WorkingCapital      float64 `json:"working_capital"`
	PreliminaryExpenses float64 `json:"preliminary_expenses"`
	Contingency         float64 `json:"contingency"`
	Total               float64 `json:"total"`
}

// MeansOfFinance splits the project cost between promoter and bank.
type MeansOfFinance struct {
	PromoterContribution float64 `json:"promoter_contribution"`
	LoanAmount           float64 `json:"loan_amount"`
}

// EMIDetails is the loan repayment summary.
type EMIDetails struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// LoanScheduleRow is one year of the repayment schedule.
type LoanScheduleRow struct {
	Year           int     `json:"year"`
	OpeningBalance float64 `json:"opening_balance"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	ClosingBalance float64 `json:"closing_balance"`
}

// PnLRow is one year of the projected profit and loss statement.
type PnLRow struct {
	Year         int     `json:"year"`
	Units        int     `json:"units"`
	Revenue      float64 `json:"revenue"`
	Costs        float64 `json:"costs"`
	EBITDA       float64 `json:"ebitda"`
	Depreciation float64 `json:"depreciation"`
	Interest     float64 `json:"interest"`
	PBT          float64 `json:"pbt"`
	Tax          float64 `json:"tax"`
	PAT          float64 `json:"pat"`
}

// BalanceSheetRow is one year of the projected balance sheet.
type BalanceSheetRow struct {
	Year            int     `json:"year"`
	GrossFixed      float64 `json:"gross_fixed"`
	AccumulatedDep  float64 `json:"accumulated_dep"`
	NetFixed        float64 `json:"net_fixed"`
	CurrentAssets   float64 `json:"current_assets"`
	TotalAssets     float64 `json:"total_assets"`
	LoanOutstanding float64 `json:"loan_outstanding"`
	PromoterEquity  float64 `json:"promoter_equity"`
	RetainedEarnings float64 `json:"retained_earnings"`
}

// DSCRRow is one year's debt service coverage.
type DSCRRow struct {
	Year   int     `json:"year"`
	DSCR   float64 `json:"dscr"`
	Rating string  `json:"rating"`
}

// BreakEven is the year-1 break-even analysis.
type BreakEven struct {
	Achievable          bool    `json:"achievable"`
	Units               int     `json:"units,omitempty"`
	Revenue             float64 `json:"revenue,omitempty"`
	Months              int     `json:"months,omitempty"`
	FixedCosts          float64 `json:"fixed_costs"`
	ContributionPerUnit float64 `json:"contribution_per_unit"`
}

// Output is the full DPR computation result.
type Output struct {
	ProjectCost    ProjectCost       `json:"project_cost"`
	Tier           string            `json:"tier"`
	MeansOfFinance MeansOfFinance    `json:"means_of_finance"`
	EMI            EMIDetails        `json:"emi"`
	LoanSchedule   []LoanScheduleRow `json:"loan_schedule"`
	ProfitAndLoss  []PnLRow          `json:"profit_and_loss"`
	BalanceSheet   []BalanceSheetRow `json:"balance_sheet"`
	DSCR           []DSCRRow         `json:"dscr"`
	AverageDSCR    float64           `json:"average_dscr"`
	IRRPct         float64           `json:"irr_pct"`
	BreakEven      BreakEven         `json:"break_even"`
	IsBankable     bool              `json:"is_bankable"`
	Recommendation string            `json:"recommendation"`
}
