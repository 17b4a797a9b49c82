package logging

import (
	"log/slog"
	"strings"
)

// secretKeyPatterns contains substrings that indicate a key likely holds
// sensitive data. Keys are matched case-insensitively.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes contains known API token prefixes that mark a value as
// sensitive regardless of its key.
var tokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// redactAttr masks a string attribute whose key looks secret or whose value
// is a known token. String slices, such as MCP server args, are masked
// element by element.
func redactAttr(a slog.Attr) slog.Attr {
	switch v := a.Value.Any().(type) {
	case string:
		if ShouldMask(a.Key) || ContainsTokenPrefix(v) {
			a.Value = slog.StringValue(MaskValue(v))
		}
	case []string:
		masked := make([]string, len(v))
		for i, s := range v {
			masked[i] = s
			if ShouldMask(a.Key) || ContainsTokenPrefix(s) {
				masked[i] = MaskValue(s)
			}
		}
		a.Value = slog.AnyValue(masked)
	}
	return a
}
