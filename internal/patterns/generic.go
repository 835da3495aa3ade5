package patterns

var genericGroup = Group{
	Name: "generic",
	Defs: []Def{
		{
			Name:        "generic_api_key",
			Regex:       `(?i)(api[_-]?key|apikey)\s*[=:]\s*["']?([A-Za-z0-9_-]{20,})["']?`,
			Severity:    "HIGH",
			Description: "Generic API key detected",
			Remediation: "Move to environment variables or secrets manager",
		},
		{
			Name:        "generic_secret",
			Regex:       `(?i)(secret|password|passwd|pwd)\s*[=:]\s*["']?([^\s"']{8,})["']?`,
			Severity:    "HIGH",
			Description: "Hardcoded secret or password detected",
			Remediation: "Use environment variables or secrets manager",
		},
		{
			Name:        "private_key",
			Regex:       `-----BEGIN (?:RSA |DSA |EC |OPENSSH )?PRIVATE KEY-----`,
			Severity:    "CRITICAL",
			Description: "Private key detected",
			Remediation: "Remove from repository, regenerate key pair",
		},
		{
			Name:        "jwt_token",
			Regex:       `eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`,
			Severity:    "MEDIUM",
			Description: "JWT token detected",
			Remediation: "Tokens should not be hardcoded, use runtime generation",
		},
		{
			Name:        "github_token",
			Regex:       `gh[pousr]_[A-Za-z0-9_]{36,}`,
			Severity:    "CRITICAL",
			Description: "GitHub token detected",
			Remediation: "Revoke token immediately and rotate",
		},
		{
			Name:        "slack_token",
			Regex:       `xox[baprs]-[0-9]{10,13}-[0-9]{10,13}-[A-Za-z0-9]{24,}`,
			Severity:    "HIGH",
			Description: "Slack token detected",
			Remediation: "Revoke token and use environment variables",
		},
	},
}
