package scheme

import (
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findAssessment(t *testing.T, list []Assessment, id string) Assessment {
	t.Helper()
	for _, a := range list {
		if a.Scheme.ID == id {
			return a
		}
	}
	t.Fatalf("scheme %s not in assessment", id)
	return Assessment{}
}

func TestAssess_RegisteredMicroBusiness(t *testing.T) {
	p := &domain.BusinessProfile{
		BusinessName:   "Sharma Snacks",
		Sector:         "food processing",
		GSTIN:          "27ABCDE1234F1Z5",
		UdyamNumber:    "UDYAM-MH-18-0012345",
		YearsActive:    3,
		AnnualTurnover: decimal.NewFromInt(18_00_000),
	}
	out := Assess(p)
	require.Len(t, out, 6)

	assert.True(t, findAssessment(t, out, "pmmy").Eligible)
	assert.True(t, findAssessment(t, out, "cgtmse").Eligible)
	assert.True(t, findAssessment(t, out, "psbloans59").Eligible)
	// Established business: no PMEGP, no Stand-Up India, no Udyam (already registered).
	assert.False(t, findAssessment(t, out, "pmegp").Eligible)
	assert.False(t, findAssessment(t, out, "standup_india").Eligible)
	assert.False(t, findAssessment(t, out, "udyam").Eligible)
}

func TestAssess_UnregisteredNewBusiness(t *testing.T) {
	p := &domain.BusinessProfile{BusinessName: "New Venture"}
	out := Assess(p)

	udyam := findAssessment(t, out, "udyam")
	assert.True(t, udyam.Eligible)

	cgtmse := findAssessment(t, out, "cgtmse")
	assert.False(t, cgtmse.Eligible)
	assert.NotEmpty(t, cgtmse.Missing)

	standup := findAssessment(t, out, "standup_india")
	assert.True(t, standup.Eligible)
}

func TestAssess_TurnoverAbovePMMYBand(t *testing.T) {
	p := &domain.BusinessProfile{AnnualTurnover: decimal.NewFromInt(6_00_00_000)}
	out := Assess(p)
	assert.False(t, findAssessment(t, out, "pmmy").Eligible)
}

func TestAssess_EligibleSortFirst(t *testing.T) {
	p := &domain.BusinessProfile{UdyamNumber: "UDYAM-KA-01-0000001", GSTIN: "29ABCDE1234F1Z2", YearsActive: 2}
	out := Assess(p)

	seenIneligible := false
	for _, a := range out {
		if !a.Eligible {
			seenIneligible = true
		} else {
			assert.False(t, seenIneligible, "eligible scheme after ineligible one")
		}
	}
}

func TestAssess_NilProfile(t *testing.T) {
	out := Assess(nil)
	assert.Len(t, out, 6)
}
