package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// PixelEventPayload carries the fixed field mapping the ad platform expects
// for both standard and custom events.
type PixelEventPayload struct {
	EventName       string                 `json:"event_name"`
	EventTime       int64                  `json:"event_time"`
	ContentName     string                 `json:"content_name,omitempty"`
	ContentCategory string                 `json:"content_category,omitempty"`
	Value           float64                `json:"value,omitempty"`
	Currency        string                 `json:"currency,omitempty"`
	ContentIDs      []string               `json:"content_ids,omitempty"`
	CustomData      map[string]interface{} `json:"custom_data,omitempty"`
}

type PixelClientInterface interface {
	SendEvent(ctx context.Context, pixelID string, payload PixelEventPayload) error
}

type pixelClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPixelClient() PixelClientInterface {
	baseURL := os.Getenv("PIXEL_API_URL")
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v18.0"
	}
	return &pixelClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (p *pixelClient) SendEvent(ctx context.Context, pixelID string, payload PixelEventPayload) error {
	body, err := json.Marshal(map[string]interface{}{
		"data":         []PixelEventPayload{payload},
		"access_token": os.Getenv("PIXEL_ACCESS_TOKEN"),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/events", p.baseURL, pixelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("pixel endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
