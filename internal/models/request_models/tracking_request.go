package request_models

type TrackEventRequest struct {
	EventType       string                 `json:"event_type"`
	ContentName     string                 `json:"content_name,omitempty"`
	ContentCategory string                 `json:"content_category,omitempty"`
	Value           float64                `json:"value,omitempty"`
	Currency        string                 `json:"currency,omitempty"`
	ContentIDs      []string               `json:"content_ids,omitempty"`
	CustomData      map[string]interface{} `json:"custom_data,omitempty"`
}

type TrackingSettingsRequest struct {
	PixelID string `json:"pixel_id"`
	Enabled bool   `json:"enabled"`
}
