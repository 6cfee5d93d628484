package repositories

import (
	"context"

	"gorm.io/gorm"

	"quizfunnel/internal/models/db_models"
)

type EventRepositoryInterface interface {
	Insert(ctx context.Context, event *db_models.PixelEvent) error
	List(ctx context.Context, page, pageSize int, eventType string) ([]db_models.PixelEvent, error)
	CountByType(ctx context.Context) ([]EventCountRow, error)
}

type EventCountRow struct {
	EventType string `gorm:"column:event_type"`
	Total     int64  `gorm:"column:total"`
	Succeeded int64  `gorm:"column:succeeded"`
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepositoryInterface {
	return &eventRepository{db: db}
}

func (r *eventRepository) Insert(ctx context.Context, event *db_models.PixelEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) List(ctx context.Context, page, pageSize int, eventType string) ([]db_models.PixelEvent, error) {
	var events []db_models.PixelEvent

	query := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC")

	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	err := query.Find(&events).Error
	return events, err
}

func (r *eventRepository) CountByType(ctx context.Context) ([]EventCountRow, error) {
	var rows []EventCountRow
	err := r.db.WithContext(ctx).
		Model(&db_models.PixelEvent{}).
		Select("event_type, COUNT(*) AS total, COUNT(*) FILTER (WHERE success) AS succeeded").
		Group("event_type").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}
