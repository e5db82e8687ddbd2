package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/leadpilot/leadpilot/internal/entity"
)

const (
	WarningLimitReached     = "limit_reached"
	WarningCSVInvalid       = "csv_invalid"
	WarningApproachingLimit = "approaching_limit"
)

var requiredColumns = []string{"first_name", "last_name", "company", "profile_url", "job_title"}

type UploadLeadsInput struct {
	User       *entity.User
	CampaignID string
	CSVData    string
}

type UploadLeadsOutput struct {
	Message         string `json:"message"`
	LeadsCreated    int    `json:"leads_created"`
	CurrentUsage    int    `json:"current_usage"`
	Limit           int    `json:"limit"`
	Warning         string `json:"warning,omitempty"`
	UpgradeRequired bool   `json:"upgrade_required,omitempty"`
}

// UploadLeadsUseCase ingests tabular lead data into a campaign: validates
// required columns, deduplicates against the owner's existing leads and
// enforces the plan quota while streaming rows in file order.
//
// The quota check reads the current count and inserts afterwards without a
// lock, so two concurrent uploads from the same owner can both pass the check
// and jointly exceed the limit. The store is the source of truth and the
// overshoot is bounded by one batch; we accept that instead of serializing
// uploads.
type UploadLeadsUseCase struct {
	Campaigns entity.CampaignRepositoryInterface
	Leads     entity.LeadRepositoryInterface
}

func NewUploadLeadsUseCase(campaigns entity.CampaignRepositoryInterface, leads entity.LeadRepositoryInterface) *UploadLeadsUseCase {
	return &UploadLeadsUseCase{Campaigns: campaigns, Leads: leads}
}

func (uc *UploadLeadsUseCase) Execute(ctx context.Context, input UploadLeadsInput) (*UploadLeadsOutput, error) {
	campaign, err := uc.Campaigns.FindByID(ctx, input.User.ID, input.CampaignID)
	if err != nil || campaign == nil {
		return nil, NewNotFound("campaign")
	}

	plan := entity.PlanFor(input.User.SubscriptionTier)
	limit := plan.LeadLimit

	// The quota is per owner across all campaigns, unassigned leads included.
	existing, err := uc.Leads.List(ctx, input.User.ID, entity.LeadFilter{})
	if err != nil {
		return nil, fmt.Errorf("load existing leads: %w", err)
	}
	current := len(existing)

	if current >= limit {
		return &UploadLeadsOutput{
			Message: fmt.Sprintf(
				"Upload completed, but you've reached your %s plan limit of %d leads. Consider upgrading for more capacity.",
				input.User.SubscriptionTier, limit),
			LeadsCreated:    0,
			CurrentUsage:    current,
			Limit:           limit,
			Warning:         WarningLimitReached,
			UpgradeRequired: true,
		}, nil
	}

	if strings.TrimSpace(input.CSVData) == "" {
		return nil, NewValidation("no CSV data provided")
	}

	reader := csv.NewReader(strings.NewReader(input.CSVData))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, NewValidation("could not read CSV header: %v", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &UploadLeadsOutput{
			Message:      fmt.Sprintf("CSV missing required columns: %s", strings.Join(missing, ", ")),
			LeadsCreated: 0,
			CurrentUsage: current,
			Limit:        limit,
			Warning:      WarningCSVInvalid,
		}, nil
	}

	deduped := make(map[entity.DedupKey]bool, len(existing))
	for _, l := range existing {
		deduped[l.Key()] = true
	}

	field := func(record []string, name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var created []*entity.Lead
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken row does not abort the batch; rows before it stand.
			continue
		}

		key := entity.DedupKey{
			FirstName:  field(record, "first_name"),
			LastName:   field(record, "last_name"),
			Company:    field(record, "company"),
			ProfileURL: field(record, "profile_url"),
		}
		if deduped[key] {
			continue
		}
		if current+len(created) >= limit {
			break
		}

		lead, err := entity.NewLead(
			input.User.ID, campaign.ID,
			key.FirstName, key.LastName,
			field(record, "job_title"),
			key.Company, key.ProfileURL,
		)
		if err != nil {
			continue
		}
		created = append(created, lead)
		deduped[key] = true
	}

	if len(created) > 0 {
		if err := uc.Leads.CreateBatch(ctx, created); err != nil {
			return nil, fmt.Errorf("persist leads: %w", err)
		}
	}

	usage := current + len(created)
	out := &UploadLeadsOutput{
		Message:      fmt.Sprintf("Successfully uploaded %d leads", len(created)),
		LeadsCreated: len(created),
		CurrentUsage: usage,
		Limit:        limit,
	}

	if float64(usage) >= float64(limit)*0.8 && usage < limit {
		out.Warning = WarningApproachingLimit
		out.Message += fmt.Sprintf(
			". You're approaching your %s plan limit (%d/%d leads).",
			input.User.SubscriptionTier, usage, limit)
	}

	return out, nil
}
