package common

import (
	"fmt"
	"net/url"
	"strings"
)

func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeBaseURL validates that raw is an absolute http(s) URL and strips
// any trailing slash, query and fragment. A port, if present, is dropped
// as well because the indexing service endpoints carry their own ports.
func NormalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("expected absolute URL like https://example.com, got %q", raw)
	}

	if !strings.EqualFold(parsed.Scheme, "http") && !strings.EqualFold(parsed.Scheme, "https") {
		return "", fmt.Errorf("base URL scheme must be http or https")
	}

	return fmt.Sprintf("%s://%s", strings.ToLower(parsed.Scheme), parsed.Hostname()), nil
}
