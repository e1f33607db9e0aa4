package integration

import "supportdesk/internal/shared/utils"

// HelpdeskInput is the helpdesk credentials form. notblank judges the trimmed
// value; min judges the raw one.
type HelpdeskInput struct {
	Domain string `json:"domain" validate:"notblank,helpdesk_domain"`
	APIKey string `json:"apiKey" validate:"notblank,min=10"`
}

type CRMInput struct {
	Token string `json:"token" validate:"notblank,min=20"`
}

var formMessages = map[string]string{
	"domain.notblank":        "Domain name is required",
	"domain.helpdesk_domain": "Please enter a valid helpdesk domain (e.g., your-domain)",
	"apiKey.notblank":        "API key is required",
	"apiKey.min":             "API key seems too short",
	"token.notblank":         "Access token is required",
	"token.min":              "Access token seems too short",
}

func ValidateHelpdesk(in HelpdeskInput) utils.FieldErrors {
	return utils.ValidateForm(in, formMessages)
}

func ValidateCRM(in CRMInput) utils.FieldErrors {
	return utils.ValidateForm(in, formMessages)
}
