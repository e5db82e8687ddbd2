package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanForKnownTiers(t *testing.T) {
	free := PlanFor(TierFree)
	assert.Equal(t, 10, free.LeadLimit)
	assert.Equal(t, 50, free.MessageLimit)

	pro := PlanFor(TierPro)
	assert.Equal(t, 100, pro.LeadLimit)
	assert.Equal(t, 500, pro.MessageLimit)

	ent := PlanFor(TierEnterprise)
	assert.Equal(t, 1000, ent.LeadLimit)
	assert.Equal(t, 5000, ent.MessageLimit)
}

func TestPlanForUnknownTierFallsBackToFree(t *testing.T) {
	p := PlanFor("platinum")
	assert.Equal(t, TierFree, p.Tier)
	assert.Equal(t, 10, p.LeadLimit)

	assert.False(t, KnownTier("platinum"))
	assert.True(t, KnownTier(TierPro))
}

func TestLeadDedupKey(t *testing.T) {
	a, _ := NewLead("user-1", "", "Jane", "Doe", "CTO", "Acme", "https://linkedin.com/in/janedoe")
	b, _ := NewLead("user-1", "camp-1", "Jane", "Doe", "VP Eng", "Acme", "https://linkedin.com/in/janedoe")

	// job title and campaign are not part of identity
	assert.Equal(t, a.Key(), b.Key())

	c, _ := NewLead("user-1", "", "Jane", "Doe", "CTO", "Globex", "https://linkedin.com/in/janedoe")
	assert.NotEqual(t, a.Key(), c.Key())
}
