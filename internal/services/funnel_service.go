package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/models/response_models"
	"quizfunnel/internal/repositories"
	"quizfunnel/pkg/utils"
)

type FunnelServiceInterface interface {
	CreateFunnel(ctx context.Context, name string) (*response_models.FunnelResponse, error)
	GetFunnel(ctx context.Context, id string) (*response_models.FunnelDocument, error)
	ListFunnels(ctx context.Context, page, pageSize int) ([]response_models.FunnelResponse, error)
	DeleteFunnel(ctx context.Context, id uuid.UUID) error
}

type FunnelService struct {
	funnelRepo repositories.FunnelRepository
	idGen      utils.IDGenerator
}

func NewFunnelService(funnelRepo repositories.FunnelRepository, idGen utils.IDGenerator) FunnelServiceInterface {
	return &FunnelService{
		funnelRepo: funnelRepo,
		idGen:      idGen,
	}
}

func (f *FunnelService) CreateFunnel(ctx context.Context, name string) (*response_models.FunnelResponse, error) {
	if name == "" {
		name = "Novo Funil"
	}

	funnel := &db_models.Funnel{
		BaseModel: db_models.BaseModel{ID: f.idGen.NewID()},
		Name:      name,
		Pages: []db_models.Page{
			{
				BaseModel: db_models.BaseModel{ID: f.idGen.NewID()},
				Title:     defaultPageTitles[db_models.PageTypeIntro],
				Type:      db_models.PageTypeIntro,
				Progress:  100,
			},
		},
	}

	if _, err := f.funnelRepo.Create(ctx, funnel); err != nil {
		log.Printf("Error creating funnel: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.FunnelResponse{
		ID:          funnel.ID.String(),
		Name:        funnel.Name,
		IsPublished: funnel.IsPublished,
		PageCount:   len(funnel.Pages),
	}, nil
}

func (f *FunnelService) GetFunnel(ctx context.Context, id string) (*response_models.FunnelDocument, error) {
	funnel, err := f.funnelRepo.GetByIDWithPages(ctx, id)
	if err != nil {
		log.Printf("Error fetching funnel %s: %v", id, err)
		return nil, utils.ErrDatabaseError
	}
	if funnel == nil {
		return nil, utils.ErrFunnelNotFound
	}

	return documentResponse(&editorSession{funnel: funnel}), nil
}

func (f *FunnelService) ListFunnels(ctx context.Context, page, pageSize int) ([]response_models.FunnelResponse, error) {
	funnels, err := f.funnelRepo.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing funnels: %v", err)
		return nil, utils.ErrDatabaseError
	}

	if len(funnels) == 0 {
		return []response_models.FunnelResponse{}, nil
	}

	responses := make([]response_models.FunnelResponse, 0, len(funnels))
	for _, funnel := range funnels {
		responses = append(responses, response_models.FunnelResponse{
			ID:          funnel.ID.String(),
			Name:        funnel.Name,
			IsPublished: funnel.IsPublished,
			PageCount:   len(funnel.Pages),
		})
	}
	return responses, nil
}

func (f *FunnelService) DeleteFunnel(ctx context.Context, id uuid.UUID) error {
	existing, err := f.funnelRepo.GetByIDWithPages(ctx, id.String())
	if err != nil {
		log.Printf("Error fetching funnel %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrFunnelNotFound
	}

	if err := f.funnelRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting funnel %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	return nil
}
