package catalog

import (
	"slices"

	"schemaforge/internal/domain"
)

// templates is the static catalog of object blueprints used to seed new
// custom objects. Blueprint IDs are catalog identifiers; instantiation
// assigns fresh field IDs.
var templates = []domain.Template{
	{
		ID:   "loan_application",
		Name: "Loan Application",
		Fields: []domain.FieldBlueprint{
			{ID: "bp_applicant_name", Name: "Applicant Name", Type: domain.FieldText, Required: true},
			{ID: "bp_amount_requested", Name: "Amount Requested", Type: domain.FieldNumber, Required: true},
			{ID: "bp_loan_type", Name: "Loan Type", Type: domain.FieldEnum, Required: true, Options: []string{"personal", "auto", "mortgage", "small_business"}},
			{ID: "bp_application_date", Name: "Application Date", Type: domain.FieldDate, Required: true},
			{ID: "bp_pre_approved", Name: "Pre-Approved", Type: domain.FieldBoolean},
			{ID: "bp_assigned_officer", Name: "Assigned Officer", Type: domain.FieldReference},
		},
	},
	{
		ID:   "credit_card_account",
		Name: "Credit Card Account",
		Fields: []domain.FieldBlueprint{
			{ID: "bp_card_product", Name: "Card Product", Type: domain.FieldEnum, Required: true, Options: []string{"rewards", "cashback", "travel", "secured"}},
			{ID: "bp_credit_limit", Name: "Credit Limit", Type: domain.FieldNumber, Required: true},
			{ID: "bp_opened_on", Name: "Opened On", Type: domain.FieldDate},
			{ID: "bp_autopay_enrolled", Name: "Autopay Enrolled", Type: domain.FieldBoolean},
		},
	},
	{
		ID:   "branch",
		Name: "Branch",
		Fields: []domain.FieldBlueprint{
			{ID: "bp_branch_name", Name: "Branch Name", Type: domain.FieldText, Required: true},
			{ID: "bp_region", Name: "Region", Type: domain.FieldEnum, Options: []string{"northeast", "southeast", "midwest", "west"}},
			{ID: "bp_opened_date", Name: "Opened Date", Type: domain.FieldDate},
		},
	},
	{
		ID:   "campaign_touch",
		Name: "Campaign Touch",
		Fields: []domain.FieldBlueprint{
			{ID: "bp_campaign_name", Name: "Campaign Name", Type: domain.FieldText, Required: true},
			{ID: "bp_channel", Name: "Channel", Type: domain.FieldEnum, Required: true, Options: []string{"email", "sms", "direct_mail", "phone"}},
			{ID: "bp_touch_date", Name: "Touch Date", Type: domain.FieldDate, Required: true},
			{ID: "bp_responded", Name: "Responded", Type: domain.FieldBoolean},
			{ID: "bp_related_offer", Name: "Related Offer", Type: domain.FieldReference},
		},
	},
}

// templatesByID indexes the template catalog for lookup. Built once.
var templatesByID = func() map[string]domain.Template {
	m := make(map[string]domain.Template, len(templates))
	for _, t := range templates {
		m[t.ID] = t
	}
	return m
}()

// Templates returns the full template catalog in stable order.
func Templates() []domain.Template {
	return slices.Clone(templates)
}

// FindTemplate looks up a template by ID.
func FindTemplate(id string) (domain.Template, bool) {
	t, ok := templatesByID[id]
	return t, ok
}
