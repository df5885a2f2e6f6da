package server

import (
	"fmt"
	"strings"

	"mlb-affiliates-service/internal/providers"
)

// normalizeProviderName returns the lower-cased source name used in metrics and logs,
// deriving it from the provider type when none is configured.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
