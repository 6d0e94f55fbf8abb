package respond

import (
	"regexp"
)

var (
	// News API keys appear as a query parameter or a bare 32-char hex token
	// in transport errors. Mask the query form first since it is more
	// specific.
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apiKey=)[a-zA-Z0-9]+`)
	apiKeyHexPattern   = regexp.MustCompile(`\b[a-f0-9]{32}\b`)

	// Database passwords inside a DSN.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with credentials masked, safe for
// log output.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyHexPattern.ReplaceAllString(msg, "****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
