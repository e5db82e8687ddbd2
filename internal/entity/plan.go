package entity

const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

type Plan struct {
	Tier         string `json:"tier"`
	Name         string `json:"name"`
	PriceKobo    int    `json:"price_kobo"`
	Currency     string `json:"currency"`
	LeadLimit    int    `json:"lead_limit"`
	MessageLimit int    `json:"message_limit"`
	Description  string `json:"description"`
}

var plans = map[string]Plan{
	TierFree: {
		Tier:         TierFree,
		Name:         "Free",
		PriceKobo:    0,
		Currency:     "NGN",
		LeadLimit:    10,
		MessageLimit: 50,
		Description:  "Perfect for getting started",
	},
	TierPro: {
		Tier:         TierPro,
		Name:         "Pro",
		PriceKobo:    500000,
		Currency:     "NGN",
		LeadLimit:    100,
		MessageLimit: 500,
		Description:  "For growing businesses",
	},
	TierEnterprise: {
		Tier:         TierEnterprise,
		Name:         "Enterprise",
		PriceKobo:    1500000,
		Currency:     "NGN",
		LeadLimit:    1000,
		MessageLimit: 5000,
		Description:  "For large-scale operations",
	},
}

// PlanFor maps a subscription tier to its limits. Unknown tiers fall back to free.
func PlanFor(tier string) Plan {
	if p, ok := plans[tier]; ok {
		return p
	}
	return plans[TierFree]
}

func KnownTier(tier string) bool {
	_, ok := plans[tier]
	return ok
}

// AllPlans returns the plan catalog in ascending price order.
func AllPlans() []Plan {
	return []Plan{plans[TierFree], plans[TierPro], plans[TierEnterprise]}
}
