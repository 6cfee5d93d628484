package repositories

import (
	"context"

	"gorm.io/gorm"

	"quizfunnel/internal/models/db_models"
)

type ResultRepositoryInterface interface {
	Insert(ctx context.Context, record *db_models.QuizResultRecord) error
	List(ctx context.Context, page, pageSize int) ([]db_models.QuizResultRecord, error)
	CountByPrimaryStyle(ctx context.Context) ([]StyleCountRow, error)
}

type StyleCountRow struct {
	PrimaryStyle string `gorm:"column:primary_style"`
	Total        int64  `gorm:"column:total"`
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepositoryInterface {
	return &resultRepository{db: db}
}

func (r *resultRepository) Insert(ctx context.Context, record *db_models.QuizResultRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *resultRepository) List(ctx context.Context, page, pageSize int) ([]db_models.QuizResultRecord, error) {
	var records []db_models.QuizResultRecord
	err := r.db.WithContext(ctx).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *resultRepository) CountByPrimaryStyle(ctx context.Context) ([]StyleCountRow, error) {
	var rows []StyleCountRow
	err := r.db.WithContext(ctx).
		Model(&db_models.QuizResultRecord{}).
		Select("primary_style, COUNT(*) AS total").
		Group("primary_style").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}
