package respond

import (
	"regexp"
)

var (
	// Anthropic keys must be masked before the generic sk- pattern runs,
	// otherwise the prefix is half-masked.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Keys and passwords embedded in connection URLs.
	urlCredentialPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// Cosmos account keys travel as long base64 blobs.
	accountKeyPattern = regexp.MustCompile(`(?i)(accountkey=)[a-zA-Z0-9+/=]+`)
)

// SanitizeError masks credentials in an error message so it can be logged.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = urlCredentialPattern.ReplaceAllString(msg, "://$1:****@")
	msg = accountKeyPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
