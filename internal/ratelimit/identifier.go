package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownAddress is used when no client address can be determined.
const UnknownAddress = "unknown"

// Identifier derives the rate limit identity of a caller. A known user id wins;
// otherwise the first entry of the X-Forwarded-For value is used.
func Identifier(forwardedFor, userID string) string {
	if userID != "" {
		return "user:" + userID
	}

	return "ip:" + FirstForwarded(forwardedFor)
}

// IdentifierFromRequest is Identifier applied to an http.Request.
func IdentifierFromRequest(r *http.Request, userID string) string {
	return Identifier(r.Header.Get("X-Forwarded-For"), userID)
}

// FirstForwarded returns the original client address from an X-Forwarded-For value.
func FirstForwarded(forwardedFor string) string {
	first, _, _ := strings.Cut(forwardedFor, ",")

	if first = strings.TrimSpace(first); first != "" {
		return first
	}

	return UnknownAddress
}
