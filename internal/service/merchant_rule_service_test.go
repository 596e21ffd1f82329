package service

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantRuleService_Create_UppercasesKeyword(t *testing.T) {
	svc := NewMerchantRuleService(testutil.NewMockMerchantRuleRepository())

	rule, err := svc.Create(context.Background(), "  zomato  ", "Food & Dining", false)
	require.NoError(t, err)
	assert.Equal(t, "ZOMATO", rule.Keyword)
}

func TestMerchantRuleService_Create_Validation(t *testing.T) {
	svc := NewMerchantRuleService(testutil.NewMockMerchantRuleRepository())

	_, err := svc.Create(context.Background(), "", "Food & Dining", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "ZOMATO", "  ", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMerchantRuleService_Delete_NotFound(t *testing.T) {
	svc := NewMerchantRuleService(testutil.NewMockMerchantRuleRepository())
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrRuleNotFound)
}
