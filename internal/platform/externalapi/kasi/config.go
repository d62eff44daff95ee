// Package kasi provides a client for the KASI (Korea Astronomy and Space Science Institute)
// lunar calendar API.
package kasi

import (
	"time"
)

// Config holds configuration for the KASI lunar calendar API client.
type Config struct {
	ServiceKey string        // API key issued by the public data portal
	BaseURL    string        // Base URL (e.g., "https://apis.data.go.kr/B090041/openapi/service/LrsrCldInfoService")
	Timeout    time.Duration // HTTP request timeout
}

// Enabled reports whether a provider endpoint is configured.
func (c Config) Enabled() bool { return c.BaseURL != "" }
