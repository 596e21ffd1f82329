package service

import (
	"context"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goal business logic.
type GoalService struct {
	goalRepo  domain.GoalRepository
	publisher websocket.EventPublisher
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo domain.GoalRepository, publisher websocket.EventPublisher) *GoalService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &GoalService{goalRepo: goalRepo, publisher: publisher}
}

// Create validates and stores a goal.
func (s *GoalService) Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	if g.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if g.Deadline != "" {
		if _, err := util.ParseDate(g.Deadline); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}
	if g.Status == "" {
		g.Status = domain.GoalStatusActive
	}
	return s.goalRepo.CreateGoal(ctx, g)
}

// Get returns one goal.
func (s *GoalService) Get(ctx context.Context, userID, id string) (*domain.Goal, error) {
	return s.goalRepo.GetGoal(ctx, userID, id)
}

// List returns all goals for a user.
func (s *GoalService) List(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.goalRepo.ListGoals(ctx, userID)
}

// AddFunds adds to a goal's current amount. The completed status tracks
// current >= target in both directions.
func (s *GoalService) AddFunds(ctx context.Context, userID, id string, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	goal, err := s.goalRepo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	syncGoalStatus(goal)

	updated, err := s.goalRepo.UpdateGoal(ctx, goal)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(userID, websocket.GoalFunded(updated))
	return updated, nil
}

// Update replaces the mutable fields of a goal, re-deriving status.
func (s *GoalService) Update(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if g.Status != domain.GoalStatusPaused {
		syncGoalStatus(g)
	}
	return s.goalRepo.UpdateGoal(ctx, g)
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.goalRepo.DeleteGoal(ctx, userID, id)
}

func syncGoalStatus(g *domain.Goal) {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = domain.GoalStatusCompleted
	} else if g.Status == domain.GoalStatusCompleted {
		g.Status = domain.GoalStatusActive
	}
}
