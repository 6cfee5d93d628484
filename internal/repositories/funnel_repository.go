package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizfunnel/internal/models/db_models"
)

type FunnelRepository interface {
	Create(ctx context.Context, funnel *db_models.Funnel) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByIDWithPages(ctx context.Context, id string) (*db_models.Funnel, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Funnel, error)

	// SaveDocument replaces the funnel's whole page/component tree with the
	// given in-memory document in one transaction.
	SaveDocument(ctx context.Context, funnel *db_models.Funnel) error
}

type funnelRepository struct {
	db *gorm.DB
}

func NewFunnelRepository(db *gorm.DB) FunnelRepository {
	return &funnelRepository{db: db}
}

func (r *funnelRepository) Create(ctx context.Context, funnel *db_models.Funnel) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(funnel).Error; err != nil {
		return uuid.Nil, err
	}
	return funnel.ID, nil
}

func (r *funnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Funnel{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers return a default value plus nil error when no rows
// are found.
// ────────────────────────────────────────────────────────────────

func (r *funnelRepository) GetByIDWithPages(ctx context.Context, id string) (*db_models.Funnel, error) {
	var funnel db_models.Funnel
	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Pages.Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&funnel, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &funnel, nil
}

func (r *funnelRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Funnel, error) {
	var funnels []db_models.Funnel
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&funnels).Error

	if err != nil {
		return nil, err
	}
	return funnels, nil
}

func (r *funnelRepository) SaveDocument(ctx context.Context, funnel *db_models.Funnel) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pages := funnel.Pages

		result := tx.Omit("Pages").Save(funnel)
		if result.Error != nil {
			return fmt.Errorf("failed to save funnel: %w", result.Error)
		}

		var pageIDs []uuid.UUID
		if err := tx.Model(&db_models.Page{}).
			Where("funnel_id = ?", funnel.ID).
			Pluck("id", &pageIDs).Error; err != nil {
			return err
		}
		if len(pageIDs) > 0 {
			if err := tx.Unscoped().
				Where("page_id IN ?", pageIDs).
				Delete(&db_models.Component{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().
				Where("funnel_id = ?", funnel.ID).
				Delete(&db_models.Page{}).Error; err != nil {
				return err
			}
		}

		for i := range pages {
			pages[i].FunnelID = funnel.ID
			pages[i].Position = i
			components := pages[i].Components
			pages[i].Components = nil

			if err := tx.Create(&pages[i]).Error; err != nil {
				return fmt.Errorf("failed to save page: %w", err)
			}

			for j := range components {
				components[j].PageID = pages[i].ID
				components[j].Position = j
				if err := tx.Create(&components[j]).Error; err != nil {
					return fmt.Errorf("failed to save component: %w", err)
				}
			}
			pages[i].Components = components
		}

		return nil
	})
}
