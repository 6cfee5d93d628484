package db_models

import "github.com/lib/pq"

// PixelEvent archives one dispatch attempt for the admin analysis page.
// The kv-store event log keeps only the most recent entries; these rows
// keep the full history.
type PixelEvent struct {
	BaseModel
	PixelID         string `gorm:"index"`
	EventType       string `gorm:"index"`
	ContentName     string
	ContentCategory string
	Value           float64
	Currency        string
	ContentIDs      pq.StringArray `gorm:"type:text[]"`
	CustomData      JSONMap        `gorm:"type:jsonb"`
	Success         bool
}
