package domain

// Dashboard is the composite read across the three stores backing
// GET /dashboard/:user_id.
type Dashboard struct {
	Summary            *SpendingSummary    `json:"summary"`
	RecentTransactions []*Transaction      `json:"recent_transactions"`
	Budgets            []*Budget           `json:"budgets"`
	Goals              []*Goal             `json:"goals"`
	UpcomingPayments   []*ScheduledPayment `json:"upcoming_payments"`
	XP                 *UserXP             `json:"xp"`
}
