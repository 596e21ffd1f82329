package service

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_Create_Defaults(t *testing.T) {
	svc := NewBudgetService(testutil.NewMockBudgetRepository(), nil)

	created, err := svc.Create(context.Background(), &domain.Budget{
		UserID:   "u1",
		Category: "Groceries",
		Amount:   decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries budget", created.Name)
	assert.Equal(t, domain.BudgetPeriodMonthly, created.Period)
	assert.NotEmpty(t, created.StartDate)
}

func TestBudgetService_Create_Validation(t *testing.T) {
	svc := NewBudgetService(testutil.NewMockBudgetRepository(), nil)

	_, err := svc.Create(context.Background(), &domain.Budget{UserID: "u1", Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), &domain.Budget{UserID: "u1", Category: "Food & Dining"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(context.Background(), &domain.Budget{
		UserID: "u1", Category: "Food & Dining", Amount: decimal.NewFromInt(100), Period: "fortnightly",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestBudgetService_Update_RejectsZeroAmount(t *testing.T) {
	repo := testutil.NewMockBudgetRepository()
	b := repo.Add(&domain.Budget{UserID: "u1", Category: "Transport", Amount: decimal.NewFromInt(2000)})
	svc := NewBudgetService(repo, nil)

	b.Amount = decimal.Zero
	_, err := svc.Update(context.Background(), b)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
