// Package service holds the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger writes and their side effects.
type TransactionService struct {
	ledgerRepo domain.LedgerRepository
	budgetRepo domain.BudgetRepository
	publisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(ledgerRepo domain.LedgerRepository, budgetRepo domain.BudgetRepository, publisher websocket.EventPublisher) *TransactionService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &TransactionService{
		ledgerRepo: ledgerRepo,
		budgetRepo: budgetRepo,
		publisher:  publisher,
	}
}

// Create validates and inserts a transaction. An expense insert also
// increments the Spent cache of every budget matching the category; the
// ledger stays authoritative and the hourly reconciliation repairs any
// drift.
func (s *TransactionService) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if t.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if t.Type != domain.TransactionTypeIncome && t.Type != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidType
	}
	t.Description = strings.TrimSpace(t.Description)
	if t.Category == "" {
		t.Category = "Other"
	}
	if t.Date == "" {
		t.Date = util.FormatDate(time.Now())
	} else if _, err := util.ParseDate(t.Date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	created, err := s.ledgerRepo.CreateTransaction(ctx, t)
	if err != nil {
		return nil, err
	}

	if created.Type == domain.TransactionTypeExpense {
		if err := s.budgetRepo.IncrementSpent(ctx, created.UserID, created.Category, created.Amount); err != nil {
			log.Warn().Err(err).Str("user_id", created.UserID).Str("category", created.Category).
				Msg("Failed to increment budget spent")
		}
	}

	s.publisher.Publish(created.UserID, websocket.TransactionCreated(created))
	return created, nil
}

// CreateBatch inserts extracted transactions one by one, skipping rows
// that fail validation, and reports how many landed.
func (s *TransactionService) CreateBatch(ctx context.Context, userID string, txns []*domain.Transaction) (int, error) {
	inserted := 0
	for _, t := range txns {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		t.UserID = userID
		if _, err := s.Create(ctx, t); err != nil {
			log.Warn().Err(err).Str("description", t.Description).Msg("Skipping transaction in batch")
			continue
		}
		inserted++
	}
	if inserted > 0 {
		s.publisher.Publish(userID, websocket.TransactionsImported(map[string]int{"count": inserted}))
	}
	return inserted, nil
}

// Get returns one transaction for the user.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	return s.ledgerRepo.GetTransaction(ctx, userID, id)
}

// Query lists transactions with filters.
func (s *TransactionService) Query(ctx context.Context, userID string, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	return s.ledgerRepo.QueryTransactions(ctx, userID, filters)
}

// Update edits the mutable fields of a transaction.
func (s *TransactionService) Update(ctx context.Context, userID, id string, category, description, notes *string) (*domain.Transaction, error) {
	updated, err := s.ledgerRepo.UpdateTransaction(ctx, userID, id, category, description, notes)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// Delete removes a transaction. Budget spent is not decremented here; the
// reconciliation job recomputes it from the ledger.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.ledgerRepo.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	s.publisher.Publish(userID, websocket.TransactionDeleted(map[string]string{"id": id}))
	return nil
}

// Summary aggregates the ledger over a date window.
func (s *TransactionService) Summary(ctx context.Context, userID, start, end string) (*domain.SpendingSummary, error) {
	return s.ledgerRepo.GetSpendingSummary(ctx, userID, start, end)
}

// Cashflow returns the daily cashflow series with a running balance.
func (s *TransactionService) Cashflow(ctx context.Context, userID, start, end string) ([]*domain.CashflowPoint, error) {
	return s.ledgerRepo.GetCashflow(ctx, userID, start, end)
}
