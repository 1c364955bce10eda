package redact

// DefaultRedactions returns the built-in rule set for common PII shapes found in plain text. The rules are
// ordered so that the more specific matchers run before the broader numeric ones.
func DefaultRedactions() ([]*Redact, error) {
	configs := []Config{
		{
			ID:      "email",
			Matcher: `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
			Replace: "<EMAIL>",
		},
		{
			ID:      "ipv4",
			Matcher: `\b(?:\d{1,3}\.){3}\d{1,3}\b`,
			Replace: "<IP>",
		},
		{
			ID:      "us-ssn",
			Matcher: `\b\d{3}-\d{2}-\d{4}\b`,
			Replace: "<SSN>",
		},
		{
			ID:      "credit-card",
			Matcher: `\b(?:\d[ -]?){13,16}\b`,
			Replace: "<CARD>",
		},
		{
			ID:      "us-phone",
			Matcher: `(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}\b`,
			Replace: "<PHONE>",
		},
		{
			ID:      "secret-assignment",
			Matcher: `(?i)((?:api[_-]?key|secret|token|passwd|password)["']?\s*[=:]\s*)\S+`,
			Replace: "${1}<REDACTED>",
		},
		{
			ID:      "bearer-token",
			Matcher: `(?i)(bearer\s+)[A-Za-z0-9._-]+`,
			Replace: "${1}<REDACTED>",
		},
	}
	redactions, err := MapNew(configs)
	if err != nil {
		return nil, err
	}
	return redactions, nil
}
