// Package scheme assesses MSME scheme eligibility from a business
// profile. The rules are deterministic; no external calls.
package scheme

import (
	"sort"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Scheme is one government scheme in the catalog.
type Scheme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxAmount   string `json:"max_amount"`
	Agency      string `json:"agency"`
}

// Assessment pairs a scheme with the eligibility verdict for a profile.
type Assessment struct {
	Scheme   Scheme   `json:"scheme"`
	Eligible bool     `json:"eligible"`
	Score    int      `json:"score"` // 0-100 readiness
	Reasons  []string `json:"reasons,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

type rule struct {
	scheme Scheme
	check  func(p *domain.BusinessProfile) (eligible bool, reasons, missing []string)
}

var (
	turnover5Cr = decimal.NewFromInt(5_00_00_000)
	turnover25L = decimal.NewFromInt(25_00_000)
)

var catalog = []rule{
	{
		scheme: Scheme{
			ID:          "pmmy",
			Name:        "Pradhan Mantri Mudra Yojana (PMMY)",
			Description: "Collateral-free loans up to ₹10 lakh for non-farm micro enterprises, in Shishu, Kishore and Tarun tiers.",
			MaxAmount:   "₹10,00,000",
			Agency:      "MUDRA / member banks",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			var reasons, missing []string
			eligible := true
			if p.AnnualTurnover.GreaterThan(turnover5Cr) {
				eligible = false
				reasons = append(reasons, "annual turnover above the micro-enterprise band")
			} else {
				reasons = append(reasons, "micro enterprise within the PMMY turnover band")
			}
			if p.UdyamNumber == "" {
				missing = append(missing, "Udyam registration strengthens the application")
			}
			return eligible, reasons, missing
		},
	},
	{
		scheme: Scheme{
			ID:          "pmegp",
			Name:        "Prime Minister's Employment Generation Programme (PMEGP)",
			Description: "Margin money subsidy of 15-35% for setting up new micro enterprises.",
			MaxAmount:   "₹50,00,000 (manufacturing) / ₹20,00,000 (services)",
			Agency:      "KVIC",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			var reasons, missing []string
			// PMEGP funds new units only.
			if p.YearsActive > 2 {
				reasons = append(reasons, "PMEGP targets new units; business has an established track record")
				return false, reasons, missing
			}
			reasons = append(reasons, "new or early-stage unit eligible for margin money subsidy")
			if p.Sector == "" {
				missing = append(missing, "sector needed to size the subsidy cap")
			}
			return true, reasons, missing
		},
	},
	{
		scheme: Scheme{
			ID:          "standup_india",
			Name:        "Stand-Up India",
			Description: "Bank loans between ₹10 lakh and ₹1 crore for SC/ST and women entrepreneurs setting up greenfield enterprises.",
			MaxAmount:   "₹1,00,00,000",
			Agency:      "SIDBI / scheduled banks",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			var reasons, missing []string
			if p.YearsActive > 0 {
				reasons = append(reasons, "greenfield-only scheme; existing businesses do not qualify")
				return false, reasons, missing
			}
			reasons = append(reasons, "greenfield enterprise may qualify")
			missing = append(missing, "promoter category (SC/ST or woman entrepreneur) must be confirmed at the bank")
			return true, reasons, missing
		},
	},
	{
		scheme: Scheme{
			ID:          "cgtmse",
			Name:        "Credit Guarantee Fund Trust for Micro and Small Enterprises (CGTMSE)",
			Description: "Credit guarantee cover for collateral-free loans up to ₹5 crore to micro and small enterprises.",
			MaxAmount:   "₹5,00,00,000",
			Agency:      "CGTMSE",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			var reasons, missing []string
			if p.UdyamNumber == "" {
				missing = append(missing, "Udyam registration is mandatory for CGTMSE cover")
				return false, reasons, missing
			}
			reasons = append(reasons, "registered MSE eligible for guarantee cover")
			return true, reasons, missing
		},
	},
	{
		scheme: Scheme{
			ID:          "psbloans59",
			Name:        "PSB Loans in 59 Minutes",
			Description: "In-principle approval for MSME loans from ₹1 lakh to ₹5 crore through the online portal.",
			MaxAmount:   "₹5,00,00,000",
			Agency:      "SIDBI / PSB consortium",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			var reasons, missing []string
			eligible := true
			if p.GSTIN == "" {
				eligible = false
				missing = append(missing, "GSTIN is required for the portal's automated appraisal")
			} else {
				reasons = append(reasons, "GST-registered business can use the automated portal")
			}
			if p.YearsActive < 1 {
				missing = append(missing, "at least one year of operations improves approval odds")
			}
			return eligible, reasons, missing
		},
	},
	{
		scheme: Scheme{
			ID:          "udyam",
			Name:        "Udyam Registration",
			Description: "Free MSME registration unlocking priority-sector lending, subsidies and delayed-payment protection.",
			MaxAmount:   "-",
			Agency:      "Ministry of MSME",
		},
		check: func(p *domain.BusinessProfile) (bool, []string, []string) {
			if p.UdyamNumber != "" {
				return false, []string{"already registered"}, nil
			}
			return true, []string{"unregistered MSME should register first; it is free and gates most other schemes"}, nil
		},
	},
}

// Assess runs the catalog against a profile. Eligible schemes sort first,
// by readiness score.
func Assess(p *domain.BusinessProfile) []Assessment {
	if p == nil {
		p = &domain.BusinessProfile{}
	}

	out := make([]Assessment, 0, len(catalog))
	for _, r := range catalog {
		eligible, reasons, missing := r.check(p)
		out = append(out, Assessment{
			Scheme:   r.scheme,
			Eligible: eligible,
			Score:    readinessScore(p, eligible, len(missing)),
			Reasons:  reasons,
			Missing:  missing,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Eligible != out[j].Eligible {
			return out[i].Eligible
		}
		return out[i].Score > out[j].Score
	})
	return out
}

// readinessScore reflects how complete the profile is for an application.
func readinessScore(p *domain.BusinessProfile, eligible bool, missingCount int) int {
	if !eligible {
		return 0
	}
	score := 40
	if p.UdyamNumber != "" {
		score += 20
	}
	if p.GSTIN != "" {
		score += 15
	}
	if p.YearsActive >= 1 {
		score += 10
	}
	if p.AnnualTurnover.IsPositive() && p.AnnualTurnover.LessThanOrEqual(turnover25L) {
		score += 5
	}
	if p.Sector != "" {
		score += 10
	}
	score -= 10 * missingCount
	if score < 5 {
		score = 5
	}
	if score > 100 {
		score = 100
	}
	return score
}
