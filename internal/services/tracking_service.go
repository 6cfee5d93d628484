package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/models/request_models"
	"quizfunnel/internal/models/response_models"
	"quizfunnel/internal/repositories"
	"quizfunnel/pkg/kvstore"
	"quizfunnel/pkg/utils"
)

const (
	KeyPixelID         = "fb_pixel_id"
	KeyTrackingEnabled = "tracking_enabled"
	KeyEventLog        = "pixel_events_log"

	// The kv-store log keeps only the newest entries; full history lives in
	// the database.
	eventLogCap = 100
)

// Leftover keys written by earlier test/debug flows, purged on request.
var mockDataKeys = []string{
	"mock_quiz_result",
	"mock_user_journey",
	"test_pixel_events",
	"debug_flags",
}

var standardPixelEvents = map[string]bool{
	"InitiateCheckout":     true,
	"AddToCart":            true,
	"CompleteRegistration": true,
	"Purchase":             true,
	"ViewContent":          true,
}

type TrackingServiceInterface interface {
	Settings(ctx context.Context) (response_models.TrackingSettings, error)
	UpdateSettings(ctx context.Context, pixelID string, enabled bool) error
	TrackEvent(ctx context.Context, req request_models.TrackEventRequest) error
	EventLog(ctx context.Context, page, pageSize int, eventType string) ([]response_models.PixelEventEntry, error)
	Summary(ctx context.Context) (*response_models.TrackingSummary, error)
	ClearMockData(ctx context.Context) error
}

type TrackingService struct {
	store     kvstore.Store
	eventRepo repositories.EventRepositoryInterface
	client    utils.PixelClientInterface
}

func NewTrackingService(
	store kvstore.Store,
	eventRepo repositories.EventRepositoryInterface,
	client utils.PixelClientInterface,
) TrackingServiceInterface {
	return &TrackingService{
		store:     store,
		eventRepo: eventRepo,
		client:    client,
	}
}

func (t *TrackingService) Settings(ctx context.Context) (response_models.TrackingSettings, error) {
	pixelID, _ := t.store.Get(KeyPixelID)
	enabled, _ := t.store.Get(KeyTrackingEnabled)

	return response_models.TrackingSettings{
		PixelID: pixelID,
		Enabled: enabled == "true",
	}, nil
}

func (t *TrackingService) UpdateSettings(ctx context.Context, pixelID string, enabled bool) error {
	if err := t.store.Set(KeyPixelID, pixelID); err != nil {
		log.Printf("Error persisting pixel id: %v", err)
	}

	value := "false"
	if enabled {
		value = "true"
	}
	if err := t.store.Set(KeyTrackingEnabled, value); err != nil {
		log.Printf("Error persisting tracking flag: %v", err)
	}
	return nil
}

// TrackEvent validates the request and dispatches it on a detached goroutine.
// Nothing here ever blocks or fails the funnel: disabled tracking, a missing
// pixel id or a dead endpoint all degrade to a log line.
func (t *TrackingService) TrackEvent(ctx context.Context, req request_models.TrackEventRequest) error {
	if req.EventType == "" {
		log.Printf("Ignoring pixel event with empty type")
		return nil
	}

	settings, _ := t.Settings(ctx)
	if !settings.Enabled {
		log.Printf("Tracking disabled, dropping event %s", req.EventType)
		return nil
	}
	if settings.PixelID == "" {
		log.Printf("No pixel id configured, dropping event %s", req.EventType)
		return nil
	}

	if !standardPixelEvents[req.EventType] {
		log.Printf("Dispatching custom pixel event %s", req.EventType)
	}

	payload := utils.PixelEventPayload{
		EventName:       req.EventType,
		EventTime:       time.Now().Unix(),
		ContentName:     req.ContentName,
		ContentCategory: req.ContentCategory,
		Value:           req.Value,
		Currency:        req.Currency,
		ContentIDs:      req.ContentIDs,
		CustomData:      req.CustomData,
	}

	go t.dispatch(settings.PixelID, payload)

	return nil
}

// dispatch runs detached from the request that triggered it; the client
// carries its own timeout.
func (t *TrackingService) dispatch(pixelID string, payload utils.PixelEventPayload) {
	ctx := context.Background()

	err := t.client.SendEvent(ctx, pixelID, payload)
	success := err == nil
	if err != nil {
		log.Printf("Error dispatching pixel event %s: %v", payload.EventName, err)
	}

	t.appendLogEntry(pixelID, payload, success)

	event := &db_models.PixelEvent{
		PixelID:         pixelID,
		EventType:       payload.EventName,
		ContentName:     payload.ContentName,
		ContentCategory: payload.ContentCategory,
		Value:           payload.Value,
		Currency:        payload.Currency,
		ContentIDs:      payload.ContentIDs,
		CustomData:      payload.CustomData,
		Success:         success,
	}
	if err := t.eventRepo.Insert(ctx, event); err != nil {
		log.Printf("Error archiving pixel event %s: %v", payload.EventName, err)
	}
}

func (t *TrackingService) appendLogEntry(pixelID string, payload utils.PixelEventPayload, success bool) {
	var entries []response_models.PixelEventEntry
	if raw, ok := t.store.Get(KeyEventLog); ok {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			log.Printf("Error decoding pixel event log, starting fresh: %v", err)
			entries = nil
		}
	}

	data := map[string]interface{}{
		"content_name":     payload.ContentName,
		"content_category": payload.ContentCategory,
		"value":            payload.Value,
		"currency":         payload.Currency,
	}
	if len(payload.ContentIDs) > 0 {
		data["content_ids"] = payload.ContentIDs
	}
	for k, v := range payload.CustomData {
		data[k] = v
	}

	entries = append(entries, response_models.PixelEventEntry{
		Timestamp: payload.EventTime,
		Type:      payload.EventName,
		Data:      data,
		Success:   success,
		PixelID:   pixelID,
	})
	if len(entries) > eventLogCap {
		entries = entries[len(entries)-eventLogCap:]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Error encoding pixel event log: %v", err)
		return
	}
	if err := t.store.Set(KeyEventLog, string(raw)); err != nil {
		log.Printf("Error persisting pixel event log: %v", err)
	}
}

func (t *TrackingService) EventLog(ctx context.Context, page, pageSize int, eventType string) ([]response_models.PixelEventEntry, error) {
	events, err := t.eventRepo.List(ctx, page, pageSize, eventType)
	if err != nil {
		log.Printf("Error listing pixel events: %v", err)
		return nil, utils.ErrDatabaseError
	}

	entries := make([]response_models.PixelEventEntry, 0, len(events))
	for _, event := range events {
		data := map[string]interface{}{
			"content_name":     event.ContentName,
			"content_category": event.ContentCategory,
			"value":            event.Value,
			"currency":         event.Currency,
		}
		if len(event.ContentIDs) > 0 {
			data["content_ids"] = []string(event.ContentIDs)
		}
		for k, v := range event.CustomData {
			data[k] = v
		}

		entries = append(entries, response_models.PixelEventEntry{
			Timestamp: event.CreatedAt,
			Type:      event.EventType,
			Data:      data,
			Success:   event.Success,
			PixelID:   event.PixelID,
		})
	}
	return entries, nil
}

func (t *TrackingService) Summary(ctx context.Context) (*response_models.TrackingSummary, error) {
	rows, err := t.eventRepo.CountByType(ctx)
	if err != nil {
		log.Printf("Error summarizing pixel events: %v", err)
		return nil, utils.ErrDatabaseError
	}

	summary := &response_models.TrackingSummary{
		ByType: make([]response_models.EventTypeSummary, 0, len(rows)),
	}
	for _, row := range rows {
		successPct := 0
		if row.Total > 0 {
			successPct = int(math.Round(100 * float64(row.Succeeded) / float64(row.Total)))
		}
		summary.TotalEvents += row.Total
		summary.ByType = append(summary.ByType, response_models.EventTypeSummary{
			EventType:  row.EventType,
			Total:      row.Total,
			Succeeded:  row.Succeeded,
			SuccessPct: successPct,
		})
	}
	return summary, nil
}

func (t *TrackingService) ClearMockData(ctx context.Context) error {
	for _, key := range mockDataKeys {
		t.store.Remove(key)
	}
	return nil
}
