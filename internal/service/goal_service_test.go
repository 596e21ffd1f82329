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

func TestGoalService_AddFunds_CompletesOnTarget(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	g := repo.Add(&domain.Goal{
		UserID:        "u1",
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromInt(10000),
		CurrentAmount: decimal.NewFromInt(9000),
		Status:        domain.GoalStatusActive,
	})
	svc := NewGoalService(repo, nil)

	updated, err := svc.AddFunds(context.Background(), "u1", g.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
	assert.True(t, updated.CurrentAmount.Equal(decimal.NewFromInt(10000)))
}

func TestGoalService_AddFunds_RejectsNonPositive(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	g := repo.Add(&domain.Goal{UserID: "u1", Name: "Trip", TargetAmount: decimal.NewFromInt(5000)})
	svc := NewGoalService(repo, nil)

	_, err := svc.AddFunds(context.Background(), "u1", g.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestGoalService_Update_ReopensWhenTargetRaised(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	g := repo.Add(&domain.Goal{
		UserID:        "u1",
		Name:          "Bike",
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.NewFromInt(50000),
		Status:        domain.GoalStatusCompleted,
	})
	svc := NewGoalService(repo, nil)

	g.TargetAmount = decimal.NewFromInt(80000)
	updated, err := svc.Update(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusActive, updated.Status)
}

func TestGoalService_Update_PausedStaysPaused(t *testing.T) {
	repo := testutil.NewMockGoalRepository()
	g := repo.Add(&domain.Goal{
		UserID:        "u1",
		Name:          "Laptop",
		TargetAmount:  decimal.NewFromInt(60000),
		CurrentAmount: decimal.NewFromInt(70000),
		Status:        domain.GoalStatusPaused,
	})
	svc := NewGoalService(repo, nil)

	updated, err := svc.Update(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalStatusPaused, updated.Status)
}
