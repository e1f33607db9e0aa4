package utils

import "strings"

// MaskEmail masks an email address for safe logging.
// Example: "user@example.com" -> "u***@example.com"
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return "***"
	}
	local := parts[0]
	if len(local) <= 1 {
		return local + "***@" + parts[1]
	}
	return string(local[0]) + "***@" + parts[1]
}

// MaskSecret keeps the first few characters of a token or API key.
// Example: "sk_live_abcdef" -> "sk_l..."
func MaskSecret(secret string) string {
	const visible = 4
	if secret == "" {
		return ""
	}
	if len(secret) <= visible {
		return "..."
	}
	return secret[:visible] + "..."
}
