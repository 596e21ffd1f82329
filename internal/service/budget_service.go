package service

import (
	"context"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic.
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	publisher  websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo domain.BudgetRepository, publisher websocket.EventPublisher) *BudgetService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &BudgetService{budgetRepo: budgetRepo, publisher: publisher}
}

// Create validates and stores a budget.
func (s *BudgetService) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	if b.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)
	if b.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if b.Name == "" {
		b.Name = b.Category + " budget"
	}
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	switch b.Period {
	case domain.BudgetPeriodWeekly, domain.BudgetPeriodMonthly, domain.BudgetPeriodYearly:
	case "":
		b.Period = domain.BudgetPeriodMonthly
	default:
		return nil, domain.ErrInvalidPeriod
	}
	if b.StartDate == "" {
		b.StartDate = util.FormatDate(time.Now())
	}

	created, err := s.budgetRepo.CreateBudget(ctx, b)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(created.UserID, websocket.BudgetUpdated(created))
	return created, nil
}

// Get returns one budget.
func (s *BudgetService) Get(ctx context.Context, userID, id string) (*domain.Budget, error) {
	return s.budgetRepo.GetBudget(ctx, userID, id)
}

// List returns all budgets for a user.
func (s *BudgetService) List(ctx context.Context, userID string) ([]*domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx, userID)
}

// Update replaces the mutable fields of a budget.
func (s *BudgetService) Update(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	updated, err := s.budgetRepo.UpdateBudget(ctx, b)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(updated.UserID, websocket.BudgetUpdated(updated))
	return updated, nil
}

// Delete removes a budget.
func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	return s.budgetRepo.DeleteBudget(ctx, userID, id)
}
