package apollo

// MatchInput carries the identity attributes the people-match endpoint keys on.
// The API key is per-user, so it travels with the request instead of living on
// the client.
type MatchInput struct {
	APIKey    string
	FirstName string
	LastName  string
	Company   string
}

type MatchOutput struct {
	Email      string
	Confidence int
	Found      bool
}

type SendEmailInput struct {
	APIKey  string
	To      string
	Subject string
	Body    string
}

type matchRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
}

type matchResponse struct {
	Person *struct {
		Email      string `json:"email"`
		Confidence int    `json:"confidence"`
	} `json:"person"`
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
