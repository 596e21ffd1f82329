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

// shareTolerance is how far the sum of shares may drift from the bill
// total before the split is rejected.
var shareTolerance = decimal.NewFromFloat(0.01)

// BillSplitService handles splitting bills across participants.
type BillSplitService struct {
	splitRepo domain.BillSplitRepository
	publisher websocket.EventPublisher
}

// NewBillSplitService creates a new BillSplitService.
func NewBillSplitService(splitRepo domain.BillSplitRepository, publisher websocket.EventPublisher) *BillSplitService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &BillSplitService{splitRepo: splitRepo, publisher: publisher}
}

// Create validates and stores a split. Shares must sum to the bill
// total within 0.01.
func (s *BillSplitService) Create(ctx context.Context, split *domain.BillSplit) (*domain.BillSplit, error) {
	if split.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	split.Title = strings.TrimSpace(split.Title)
	if split.Title == "" {
		return nil, domain.ErrNameRequired
	}
	if split.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if len(split.Shares) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if split.Date == "" {
		split.Date = util.FormatDate(time.Now())
	} else if _, err := util.ParseDate(split.Date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	sum := decimal.Zero
	for _, share := range split.Shares {
		share.Participant = strings.TrimSpace(share.Participant)
		if share.Participant == "" {
			return nil, domain.ErrInvalidInput
		}
		if share.ShareAmount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		sum = sum.Add(share.ShareAmount)
		share.PaidAmount = decimal.Zero
		share.PaymentStatus = domain.SplitPaymentPending
	}
	if sum.Sub(split.TotalAmount).Abs().GreaterThan(shareTolerance) {
		return nil, domain.ErrSharesMismatch
	}

	created, err := s.splitRepo.CreateSplit(ctx, split)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(created.UserID, websocket.BillSplitUpdated(created))
	return created, nil
}

// Get returns one split with items and shares.
func (s *BillSplitService) Get(ctx context.Context, userID, id string) (*domain.BillSplit, error) {
	return s.splitRepo.GetSplit(ctx, userID, id)
}

// List returns all splits for a user.
func (s *BillSplitService) List(ctx context.Context, userID string) ([]*domain.BillSplit, error) {
	return s.splitRepo.ListSplits(ctx, userID)
}

// MakePayment records a payment against one participant's share.
// PaidAmount accumulates and the status only ever moves forward:
// pending, partial, then paid once the share is covered.
func (s *BillSplitService) MakePayment(ctx context.Context, userID, splitID, itemID string, amount decimal.Decimal) (*domain.BillSplit, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	split, err := s.splitRepo.GetSplit(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}

	var item *domain.SplitItem
	for _, share := range split.Shares {
		if share.ID == itemID {
			item = share
			break
		}
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.PaymentStatus == domain.SplitPaymentPaid {
		return nil, domain.ErrInvalidStatus
	}

	item.PaidAmount = item.PaidAmount.Add(amount)
	if item.PaidAmount.GreaterThanOrEqual(item.ShareAmount) {
		item.PaymentStatus = domain.SplitPaymentPaid
	} else {
		item.PaymentStatus = domain.SplitPaymentPartial
	}

	if err := s.splitRepo.UpdateSplitItem(ctx, item); err != nil {
		return nil, err
	}

	updated, err := s.splitRepo.GetSplit(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(userID, websocket.BillSplitUpdated(updated))
	return updated, nil
}
