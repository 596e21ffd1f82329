package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// PaymentService handles scheduled payments, including loan/EMI tracking.
type PaymentService struct {
	paymentRepo  domain.ScheduledPaymentRepository
	transactions *TransactionService
	publisher    websocket.EventPublisher
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo domain.ScheduledPaymentRepository, transactions *TransactionService, publisher websocket.EventPublisher) *PaymentService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		transactions: transactions,
		publisher:    publisher,
	}
}

// Create validates and stores a scheduled payment.
func (s *PaymentService) Create(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	if p.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, domain.ErrNameRequired
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	switch p.Frequency {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly, domain.FrequencyYearly:
	default:
		return nil, domain.ErrInvalidFrequency
	}
	if _, err := util.ParseDate(p.DueDate); err != nil {
		return nil, domain.ErrInvalidDate
	}
	if p.NextDueDate == "" {
		p.NextDueDate = p.DueDate
	}
	if p.Status == "" {
		p.Status = domain.PaymentStatusActive
	}
	if p.PaymentType == "" {
		p.PaymentType = domain.PaymentTypeRegular
	}
	return s.paymentRepo.CreatePayment(ctx, p)
}

// Get returns one scheduled payment.
func (s *PaymentService) Get(ctx context.Context, userID, id string) (*domain.ScheduledPayment, error) {
	return s.paymentRepo.GetPayment(ctx, userID, id)
}

// List returns all scheduled payments for a user.
func (s *PaymentService) List(ctx context.Context, userID string) ([]*domain.ScheduledPayment, error) {
	return s.paymentRepo.ListPayments(ctx, userID)
}

// Update replaces the mutable fields of a payment.
func (s *PaymentService) Update(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	return s.paymentRepo.UpdatePayment(ctx, p)
}

// Delete removes a scheduled payment.
func (s *PaymentService) Delete(ctx context.Context, userID, id string) error {
	return s.paymentRepo.DeletePayment(ctx, userID, id)
}

// MarkPaid records one payment cycle: advances the due date with
// calendar arithmetic, splits loan installments into interest and
// principal, and books a synthetic expense in the ledger.
func (s *PaymentService) MarkPaid(ctx context.Context, userID, id string) (*domain.ScheduledPayment, error) {
	p, err := s.paymentRepo.GetPayment(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	due, err := util.ParseDate(p.NextDueDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	nextDue := util.AddPeriod(due, string(p.Frequency))

	description := "EMI: " + p.Name
	isLoan := p.PaymentType == domain.PaymentTypeLoan || p.PaymentType == domain.PaymentTypeEMI
	if isLoan && p.InterestRate > 0 {
		// Reducing-balance split: one month's interest on the
		// outstanding principal, remainder reduces the principal.
		monthlyRate := decimal.NewFromFloat(p.InterestRate).Div(decimal.NewFromInt(1200))
		interest := p.PrincipalOutstanding.Mul(monthlyRate).Round(2)
		principal := p.Amount.Sub(interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		if principal.GreaterThan(p.PrincipalOutstanding) {
			principal = p.PrincipalOutstanding
		}

		p.PrincipalOutstanding = p.PrincipalOutstanding.Sub(principal)
		p.TotalInterestPaid = p.TotalInterestPaid.Add(interest)
		p.TotalPrincipalPaid = p.TotalPrincipalPaid.Add(principal)
		if p.PrincipalOutstanding.IsZero() {
			p.Status = domain.PaymentStatusCompleted
		}
		description = fmt.Sprintf("EMI: %s (principal ₹%s, interest ₹%s)",
			p.Name, principal.StringFixed(2), interest.StringFixed(2))
	} else if !isLoan {
		description = "EMI: " + p.Name + " (scheduled payment)"
	}

	if _, err := s.transactions.Create(ctx, &domain.Transaction{
		UserID:      userID,
		Amount:      p.Amount,
		Type:        domain.TransactionTypeExpense,
		Category:    p.Category,
		Description: description,
		Date:        util.FormatDate(time.Now()),
	}); err != nil {
		return nil, err
	}

	p.LastPaidDate = util.FormatDate(time.Now())
	p.NextDueDate = util.FormatDate(nextDue)

	updated, err := s.paymentRepo.UpdatePayment(ctx, p)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(userID, websocket.PaymentPaid(updated))
	return updated, nil
}

// Upcoming returns active payments due within the next `days` days.
func (s *PaymentService) Upcoming(ctx context.Context, userID string, days int) ([]*domain.ScheduledPayment, error) {
	if days <= 0 {
		days = 7
	}
	all, err := s.paymentRepo.ListPayments(ctx, userID)
	if err != nil {
		return nil, err
	}

	cutoff := util.FormatDate(time.Now().AddDate(0, 0, days))
	today := util.FormatDate(time.Now())
	var due []*domain.ScheduledPayment
	for _, p := range all {
		if p.Status != domain.PaymentStatusActive {
			continue
		}
		if p.NextDueDate >= today && p.NextDueDate <= cutoff {
			due = append(due, p)
		}
	}
	return due, nil
}
