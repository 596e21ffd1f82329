package domain

import (
	"context"
	"time"
)

// MerchantRule maps a normalized upper-case keyword to a category.
// Keywords are unique; longer keywords win during substring matching.
type MerchantRule struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Category  string    `json:"category"`
	IsAuto    bool      `json:"is_auto"`
	CreatedAt time.Time `json:"created_at"`
}

// MerchantRuleRepository persists merchant rules in the planning store.
type MerchantRuleRepository interface {
	CreateRule(ctx context.Context, r *MerchantRule) (*MerchantRule, error)
	// ListRules returns every rule ordered by length(keyword) desc so that
	// the most specific keyword matches first.
	ListRules(ctx context.Context) ([]*MerchantRule, error)
	DeleteRule(ctx context.Context, id string) error
}
