package patterns

var awsGroup = Group{
	Name: "aws",
	Defs: []Def{
		{
			Name:        "aws_access_key_id",
			Regex:       `(?:A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA|ASIA)[A-Z0-9]{16}`,
			Severity:    "CRITICAL",
			Description: "AWS Access Key ID detected",
			Remediation: "Rotate key immediately via IAM console, revoke compromised key",
		},
		{
			Name:        "aws_secret_access_key",
			Regex:       `(?i)aws_secret_access_key\s*[=:]\s*["']?([A-Za-z0-9/+=]{40})["']?`,
			Severity:    "CRITICAL",
			Description: "AWS Secret Access Key detected",
			Remediation: "Rotate credentials immediately, use IAM roles or AWS Secrets Manager",
		},
		{
			Name:        "aws_session_token",
			Regex:       `(?i)aws_session_token\s*[=:]\s*["']?([A-Za-z0-9/+=]{100,})["']?`,
			Severity:    "HIGH",
			Description: "AWS Session Token detected",
			Remediation: "Session tokens are temporary but should not be committed",
		},
		{
			Name:        "aws_account_id",
			Regex:       `(?i)aws_account[_-]?id\s*[=:]\s*["']?(\d{12})["']?`,
			Severity:    "MEDIUM",
			Description: "AWS Account ID detected",
			Remediation: "Account IDs are not highly sensitive but should be in config",
		},
	},
}
