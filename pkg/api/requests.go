package api

import "encoding/json"

// ResearchRequest is the HTTP request body for POST /api/research.
type ResearchRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// RefineRequest is the HTTP request body for POST /api/refine.
// Instructions is optional; anything but a JSON string reads as "".
type RefineRequest struct {
	Content      string          `json:"content" binding:"required"`
	Instructions json.RawMessage `json:"instructions"`
}

// RestyleRequest is the HTTP request body for POST /api/restyle.
// Format is optional; non-string or unknown values are coerced to executive-report.
type RestyleRequest struct {
	Content string          `json:"content" binding:"required"`
	Format  json.RawMessage `json:"format"`
}

// SelectProviderRequest is the HTTP request body for POST /api/settings/providers.
type SelectProviderRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
}

// optionalString returns raw as a string when it holds a JSON string, else "".
func optionalString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
