package service

import (
	"context"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// DashboardService composes the dashboard read across the three stores.
type DashboardService struct {
	transactions *TransactionService
	budgets      *BudgetService
	goals        *GoalService
	payments     *PaymentService
	milestones   *MilestoneService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	transactions *TransactionService,
	budgets *BudgetService,
	goals *GoalService,
	payments *PaymentService,
	milestones *MilestoneService,
) *DashboardService {
	return &DashboardService{
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		payments:     payments,
		milestones:   milestones,
	}
}

// Get assembles the dashboard for one user. Partial failures on the
// side panels degrade to empty sections rather than failing the whole
// read; the spending summary is the only required piece.
func (s *DashboardService) Get(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	now := time.Now()
	summary, err := s.transactions.Summary(ctx, userID, util.FormatDate(util.MonthsAgo(now, 1)), util.FormatDate(now))
	if err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{Summary: summary}

	recent, err := s.transactions.Query(ctx, userID, &domain.TransactionFilters{Limit: 10})
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Dashboard: recent transactions unavailable")
	} else {
		dash.RecentTransactions = recent
	}

	budgets, err := s.budgets.List(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Dashboard: budgets unavailable")
	} else {
		dash.Budgets = budgets
	}

	goals, err := s.goals.List(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Dashboard: goals unavailable")
	} else {
		dash.Goals = goals
	}

	upcoming, err := s.payments.Upcoming(ctx, userID, 7)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Dashboard: upcoming payments unavailable")
	} else {
		dash.UpcomingPayments = upcoming
	}

	xp, err := s.milestones.XP(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Dashboard: xp unavailable")
	} else {
		dash.XP = xp
	}

	return dash, nil
}
