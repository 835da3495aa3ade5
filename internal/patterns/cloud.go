package patterns

var cloudGroup = Group{
	Name: "cloud",
	Defs: []Def{
		{
			Name:        "gcp_api_key",
			Regex:       `AIza[0-9A-Za-z_-]{35}`,
			Severity:    "CRITICAL",
			Description: "Google Cloud API key detected",
			Remediation: "Rotate key immediately via GCP console",
		},
		{
			Name:        "gcp_service_account",
			Regex:       `"type":\s*"service_account"`,
			Severity:    "CRITICAL",
			Description: "GCP service account JSON detected",
			Remediation: "Remove service account file, use workload identity",
		},
		{
			Name:        "azure_connection_string",
			Regex:       `(?i)DefaultEndpointsProtocol=https?;.*AccountKey=[A-Za-z0-9+/=]{88}`,
			Severity:    "CRITICAL",
			Description: "Azure storage connection string detected",
			Remediation: "Rotate storage key and use managed identities",
		},
		{
			Name:        "azure_client_secret",
			Regex:       `(?i)client[_-]?secret\s*[=:]\s*["']?([A-Za-z0-9~._-]{34,})["']?`,
			Severity:    "HIGH",
			Description: "Azure client secret detected",
			Remediation: "Rotate secret via Azure AD app registration",
		},
		{
			// Any lowercase UUID; noisy, but Heroku keys have no other shape.
			Name:        "heroku_api_key",
			Regex:       `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`,
			Severity:    "HIGH",
			Description: "Heroku API key detected",
			Remediation: "Regenerate API key from Heroku account settings",
		},
	},
}
