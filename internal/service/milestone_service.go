package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// analysisCooldown is the minimum gap between two health analyses.
const analysisCooldown = 7 * 24 * time.Hour

// AnalysisMetrics is the metrics payload a snapshot is computed from and
// milestone predicates are evaluated against.
type AnalysisMetrics struct {
	TotalTransactions int     `json:"total_transactions"`
	SavingsRate       float64 `json:"savings_rate"`
	HealthScore       float64 `json:"health_score"`
	HealthGrade       string  `json:"health_grade"`
	BudgetCount       int     `json:"budget_count"`
	BudgetsRespected  bool    `json:"budgets_respected"`
	GoalCount         int     `json:"goal_count"`
	GoalsCompleted    int     `json:"goals_completed"`
	EmergencyMonths   float64 `json:"emergency_months"`
	HasInvestments    bool    `json:"has_investments"`
	DebtToIncomePct   float64 `json:"debt_to_income_pct"`
}

// milestoneDef is one entry of the fixed catalog.
type milestoneDef struct {
	ID        string
	Title     string
	Icon      string
	XP        int
	Order     int
	Predicate func(m *AnalysisMetrics) bool
}

// milestoneCatalog is the fixed 14-item catalog.
var milestoneCatalog = []milestoneDef{
	{"first_analysis", "First Health Check", "🩺", 10, 1, func(*AnalysisMetrics) bool { return true }},
	{"first_transaction", "Getting Started", "📝", 10, 2, func(m *AnalysisMetrics) bool { return m.TotalTransactions >= 1 }},
	{"transactions_100", "Century Tracker", "💯", 25, 3, func(m *AnalysisMetrics) bool { return m.TotalTransactions >= 100 }},
	{"saver_10", "Steady Saver", "🪙", 20, 4, func(m *AnalysisMetrics) bool { return m.SavingsRate >= 10 }},
	{"saver_25", "Smart Saver", "💰", 30, 5, func(m *AnalysisMetrics) bool { return m.SavingsRate >= 25 }},
	{"super_saver_40", "Super Saver", "🏆", 50, 6, func(m *AnalysisMetrics) bool { return m.SavingsRate >= 40 }},
	{"first_budget", "Budget Beginner", "📊", 15, 7, func(m *AnalysisMetrics) bool { return m.BudgetCount >= 1 }},
	{"budget_keeper", "Budget Keeper", "🎯", 30, 8, func(m *AnalysisMetrics) bool { return m.BudgetCount >= 1 && m.BudgetsRespected }},
	{"first_goal", "Dream Starter", "🌱", 15, 9, func(m *AnalysisMetrics) bool { return m.GoalCount >= 1 }},
	{"goal_achieved", "Goal Getter", "🎉", 40, 10, func(m *AnalysisMetrics) bool { return m.GoalsCompleted >= 1 }},
	{"emergency_3", "Safety Net", "🛟", 35, 11, func(m *AnalysisMetrics) bool { return m.EmergencyMonths >= 3 }},
	{"emergency_6", "Fortress", "🏰", 50, 12, func(m *AnalysisMetrics) bool { return m.EmergencyMonths >= 6 }},
	{"investor", "Investor", "📈", 30, 13, func(m *AnalysisMetrics) bool { return m.HasInvestments }},
	{"health_a_grade", "Peak Health", "⭐", 45, 14, func(m *AnalysisMetrics) bool { return m.HealthGrade == "A" }},
}

// AnalysisGate reports whether a new analysis may run.
type AnalysisGate struct {
	CanAnalyze       bool   `json:"can_analyze"`
	NextAnalysisDate string `json:"next_analysis_date,omitempty"`
	DaysRemaining    int    `json:"days_remaining,omitempty"`
	HoursRemaining   int    `json:"hours_remaining,omitempty"`
}

// AnalysisResult is the outcome of one analysis run.
type AnalysisResult struct {
	Snapshot      *domain.AnalysisSnapshot `json:"snapshot"`
	Metrics       *AnalysisMetrics         `json:"metrics"`
	NewMilestones []*domain.Milestone      `json:"new_milestones"`
	XP            *domain.UserXP           `json:"xp"`
}

// MilestoneService evaluates the milestone catalog on analysis snapshots.
type MilestoneService struct {
	docsRepo  domain.DocsRepository
	publisher websocket.EventPublisher
	now       func() time.Time
}

// NewMilestoneService creates a new MilestoneService.
func NewMilestoneService(docsRepo domain.DocsRepository, publisher websocket.EventPublisher) *MilestoneService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &MilestoneService{docsRepo: docsRepo, publisher: publisher, now: time.Now}
}

// Gate checks the 7-day cooldown since the last snapshot.
func (s *MilestoneService) Gate(ctx context.Context, userID string) (*AnalysisGate, error) {
	last, err := s.docsRepo.LatestSnapshot(ctx, userID)
	if err == domain.ErrNotFound || last == nil {
		return &AnalysisGate{CanAnalyze: true}, nil
	}
	if err != nil {
		return nil, err
	}

	elapsed := s.now().Sub(last.CreatedAt)
	if elapsed >= analysisCooldown {
		return &AnalysisGate{CanAnalyze: true}, nil
	}

	remaining := analysisCooldown - elapsed
	next := last.CreatedAt.Add(analysisCooldown)
	return &AnalysisGate{
		CanAnalyze:       false,
		NextAnalysisDate: next.Format("2006-01-02"),
		DaysRemaining:    int(remaining.Hours()) / 24,
		HoursRemaining:   int(remaining.Hours()) % 24,
	}, nil
}

// RecordAnalysis stores the snapshot and awards any newly-unlocked
// milestones. A milestone never awards twice; re-awarding is a no-op at
// the store level.
func (s *MilestoneService) RecordAnalysis(ctx context.Context, userID string, metrics *AnalysisMetrics) (*AnalysisResult, error) {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return nil, err
	}

	month := s.now().Format("2006-01")
	snapshot, err := s.docsRepo.CreateSnapshot(ctx, &domain.AnalysisSnapshot{
		ID:      uuid.NewString(),
		UserID:  userID,
		Month:   month,
		Metrics: raw,
	})
	if err != nil {
		return nil, err
	}

	if err := s.docsRepo.UpsertMonthlyMetrics(ctx, &domain.MonthlyMetrics{
		UserID:  userID,
		Month:   month,
		Metrics: raw,
	}); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to upsert monthly metrics")
	}

	achieved, err := s.docsRepo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(achieved))
	for _, m := range achieved {
		have[m.MilestoneID] = true
	}

	var fresh []*domain.Milestone
	now := s.now()
	for _, def := range milestoneCatalog {
		if have[def.ID] || !def.Predicate(metrics) {
			continue
		}
		m := &domain.Milestone{
			UserID:      userID,
			MilestoneID: def.ID,
			Title:       def.Title,
			Icon:        def.Icon,
			XP:          def.XP,
			Order:       def.Order,
			Achieved:    true,
			AchievedAt:  &now,
		}
		if err := s.docsRepo.AwardMilestone(ctx, m); err != nil {
			return nil, err
		}
		fresh = append(fresh, m)
		s.publisher.Publish(userID, websocket.MilestoneAchieved(m))
	}

	xp, err := s.XP(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Snapshot:      snapshot,
		Metrics:       metrics,
		NewMilestones: fresh,
		XP:            xp,
	}, nil
}

// Progress returns the full catalog with achieved state for a user.
func (s *MilestoneService) Progress(ctx context.Context, userID string) ([]*domain.Milestone, *domain.UserXP, error) {
	achieved, err := s.docsRepo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	byID := lo.KeyBy(achieved, func(m *domain.Milestone) string { return m.MilestoneID })

	out := make([]*domain.Milestone, 0, len(milestoneCatalog))
	total := lo.SumBy(achieved, func(m *domain.Milestone) int { return m.XP })
	for _, def := range milestoneCatalog {
		if m, ok := byID[def.ID]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, &domain.Milestone{
			UserID:      userID,
			MilestoneID: def.ID,
			Title:       def.Title,
			Icon:        def.Icon,
			XP:          def.XP,
			Order:       def.Order,
			Achieved:    false,
		})
	}

	return out, &domain.UserXP{
		UserID:  userID,
		TotalXP: total,
		Level:   total/100 + 1,
	}, nil
}

// XP derives the user's total XP and level from achieved milestones.
func (s *MilestoneService) XP(ctx context.Context, userID string) (*domain.UserXP, error) {
	achieved, err := s.docsRepo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := lo.SumBy(achieved, func(m *domain.Milestone) int { return m.XP })
	return &domain.UserXP{UserID: userID, TotalXP: total, Level: total/100 + 1}, nil
}
