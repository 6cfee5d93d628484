package response_models

type TrackingSettings struct {
	PixelID string `json:"pixel_id"`
	Enabled bool   `json:"enabled"`
}

// PixelEventEntry mirrors one entry of the pixel_events_log key.
type PixelEventEntry struct {
	Timestamp int64                  `json:"timestamp"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Success   bool                   `json:"success"`
	PixelID   string                 `json:"pixel_id"`
}

type EventTypeSummary struct {
	EventType  string `json:"event_type"`
	Total      int64  `json:"total"`
	Succeeded  int64  `json:"succeeded"`
	SuccessPct int    `json:"success_pct"`
}

type TrackingSummary struct {
	TotalEvents int64              `json:"total_events"`
	ByType      []EventTypeSummary `json:"by_type"`
}
