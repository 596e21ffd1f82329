package service

import (
	"context"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
)

// MerchantRuleService manages user-defined categorization rules.
type MerchantRuleService struct {
	ruleRepo domain.MerchantRuleRepository
}

// NewMerchantRuleService creates a new MerchantRuleService.
func NewMerchantRuleService(ruleRepo domain.MerchantRuleRepository) *MerchantRuleService {
	return &MerchantRuleService{ruleRepo: ruleRepo}
}

// Create stores a rule. Keywords are upper-cased so matching against
// normalized merchant tokens is case-insensitive.
func (s *MerchantRuleService) Create(ctx context.Context, keyword, category string, isAuto bool) (*domain.MerchantRule, error) {
	keyword = strings.ToUpper(strings.TrimSpace(keyword))
	category = strings.TrimSpace(category)
	if keyword == "" || category == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.ruleRepo.CreateRule(ctx, &domain.MerchantRule{
		Keyword:  keyword,
		Category: category,
		IsAuto:   isAuto,
	})
}

// List returns all rules, most specific keyword first.
func (s *MerchantRuleService) List(ctx context.Context) ([]*domain.MerchantRule, error) {
	return s.ruleRepo.ListRules(ctx)
}

// Delete removes a rule.
func (s *MerchantRuleService) Delete(ctx context.Context, id string) error {
	return s.ruleRepo.DeleteRule(ctx, id)
}
