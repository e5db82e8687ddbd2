package paystack

type InitializeInput struct {
	Email       string
	AmountKobo  int
	CallbackURL string
	UserID      string
	PlanTier    string
}

type InitializeOutput struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Metadata rides along with the charge and comes back on the webhook.
type Metadata struct {
	UserID   string `json:"user_id"`
	PlanTier string `json:"plan_tier"`
	Type     string `json:"type"`
}

type initializeRequest struct {
	Email       string   `json:"email"`
	Amount      int      `json:"amount"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

type initializeResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// WebhookEvent is the subset of the Paystack event envelope we act on.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string   `json:"reference"`
		Status    string   `json:"status"`
		Metadata  Metadata `json:"metadata"`
	} `json:"data"`
}
