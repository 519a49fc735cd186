// Package shared provides common utility functions used across multiple
// packages in the featurestore codebase.
package shared

import (
	"fmt"
	"strings"
)

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}

// NormalizeEndpoint trims whitespace and trailing slashes from a layer URL.
func NormalizeEndpoint(endpoint string) string {
	return strings.TrimRight(strings.TrimSpace(endpoint), "/")
}

// JoinEndpoint appends a path segment to a layer URL, keeping any query
// string attached to the endpoint at the end.
func JoinEndpoint(endpoint string, segment string) string {
	base := NormalizeEndpoint(endpoint)
	query := ""
	if idx := strings.Index(base, "?"); idx >= 0 {
		base, query = strings.TrimRight(base[:idx], "/"), base[idx:]
	}
	return base + "/" + strings.TrimLeft(segment, "/") + query
}
