package services

import (
	"context"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/models/response_models"
	"quizfunnel/internal/repositories"
	"quizfunnel/pkg/utils"
)

var defaultPageTitles = map[string]string{
	db_models.PageTypeIntro:      "Introdução",
	db_models.PageTypeQuestion:   "Pergunta",
	db_models.PageTypeStrategic:  "Pergunta Estratégica",
	db_models.PageTypeTransition: "Transição",
	db_models.PageTypeLoading:    "Calculando seu resultado",
	db_models.PageTypeResult:     "Seu Resultado",
	db_models.PageTypeOffer:      "Oferta Exclusiva",
}

type EditorServiceInterface interface {
	OpenSession(ctx context.Context, funnelID string) (*response_models.EditorSessionResponse, error)
	CloseSession(ctx context.Context, sessionID string) error
	Document(ctx context.Context, sessionID string) (*response_models.FunnelDocument, error)
	Save(ctx context.Context, sessionID string) error

	AddPage(ctx context.Context, sessionID, pageType string, insertAfter *int) (*response_models.FunnelDocument, error)
	DuplicatePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error)
	DeletePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error)
	ReorderPages(ctx context.Context, sessionID string, fromIndex, toIndex int) (*response_models.FunnelDocument, error)
	SetActivePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error)

	AddComponent(ctx context.Context, sessionID, pageID, componentType string, insertIndex *int) (*response_models.FunnelDocument, error)
	SelectComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error)
	UpdateComponent(ctx context.Context, sessionID, componentID string, data, style map[string]interface{}) (*response_models.FunnelDocument, error)
	DuplicateComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error)
	DeleteComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error)
	MoveComponent(ctx context.Context, sessionID, componentID, direction string) (*response_models.FunnelDocument, error)
}

// editorSession holds one funnel document being edited, plus the active
// page pointer and selected component the visual editor tracks.
type editorSession struct {
	id         uuid.UUID
	funnel     *db_models.Funnel
	activePage int
	selected   uuid.UUID
}

type EditorService struct {
	funnelRepo repositories.FunnelRepository
	idGen      utils.IDGenerator

	mu       sync.RWMutex
	sessions map[string]*editorSession
}

func NewEditorService(funnelRepo repositories.FunnelRepository, idGen utils.IDGenerator) EditorServiceInterface {
	return &EditorService{
		funnelRepo: funnelRepo,
		idGen:      idGen,
		sessions:   make(map[string]*editorSession),
	}
}

func (s *EditorService) OpenSession(ctx context.Context, funnelID string) (*response_models.EditorSessionResponse, error) {
	var funnel *db_models.Funnel

	if funnelID == "" {
		funnel = &db_models.Funnel{
			BaseModel: db_models.BaseModel{ID: s.idGen.NewID()},
			Name:      "Novo Funil",
			Pages:     []db_models.Page{*s.newPage(db_models.PageTypeIntro)},
		}
	} else {
		loaded, err := s.funnelRepo.GetByIDWithPages(ctx, funnelID)
		if err != nil {
			log.Printf("Error loading funnel %s: %v", funnelID, err)
			return nil, utils.ErrDatabaseError
		}
		if loaded == nil {
			return nil, utils.ErrFunnelNotFound
		}
		funnel = loaded
	}

	recomputeProgress(funnel.Pages)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &editorSession{
		id:     s.idGen.NewID(),
		funnel: funnel,
	}
	s.sessions[sess.id.String()] = sess

	return &response_models.EditorSessionResponse{
		SessionID: sess.id.String(),
		Document:  documentResponse(sess),
	}, nil
}

func (s *EditorService) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return utils.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *EditorService) Document(ctx context.Context, sessionID string) (*response_models.FunnelDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return documentResponse(sess), nil
}

func (s *EditorService) Save(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return utils.ErrSessionNotFound
	}

	if err := s.funnelRepo.SaveDocument(ctx, sess.funnel); err != nil {
		log.Printf("Error saving funnel %s: %v", sess.funnel.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *EditorService) AddPage(ctx context.Context, sessionID, pageType string, insertAfter *int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if !db_models.IsValidPageType(pageType) {
		return nil, utils.ErrUnknownPageType
	}

	page := s.newPage(pageType)
	pages := sess.funnel.Pages

	if insertAfter == nil {
		pages = append(pages, *page)
	} else {
		at := *insertAfter
		if at < 0 || at >= len(pages) {
			return nil, utils.ErrInvalidPageIndex
		}
		pages = append(pages, db_models.Page{})
		copy(pages[at+2:], pages[at+1:])
		pages[at+1] = *page
	}

	sess.funnel.Pages = pages
	recomputeProgress(sess.funnel.Pages)

	return documentResponse(sess), nil
}

func (s *EditorService) DuplicatePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	pages := sess.funnel.Pages
	if index < 0 || index >= len(pages) {
		return nil, utils.ErrInvalidPageIndex
	}

	source := pages[index]
	duplicate := db_models.Page{
		BaseModel: db_models.BaseModel{ID: s.idGen.NewID()},
		FunnelID:  source.FunnelID,
		Title:     source.Title,
		Type:      source.Type,
		Progress:  source.Progress,
	}
	duplicate.Components = make([]db_models.Component, 0, len(source.Components))
	for _, component := range source.Components {
		duplicate.Components = append(duplicate.Components, db_models.Component{
			BaseModel: db_models.BaseModel{ID: s.idGen.NewID()},
			PageID:    duplicate.ID,
			Type:      component.Type,
			Data:      component.Data.Clone(),
			Style:     component.Style.Clone(),
		})
	}

	pages = append(pages, db_models.Page{})
	copy(pages[index+2:], pages[index+1:])
	pages[index+1] = duplicate

	sess.funnel.Pages = pages
	recomputeProgress(sess.funnel.Pages)

	return documentResponse(sess), nil
}

func (s *EditorService) DeletePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	pages := sess.funnel.Pages
	if index < 0 || index >= len(pages) {
		return nil, utils.ErrInvalidPageIndex
	}
	if len(pages) == 1 {
		return nil, utils.ErrLastPage
	}

	// Clear the selection if the selected component lived on this page.
	for _, component := range pages[index].Components {
		if component.ID == sess.selected {
			sess.selected = uuid.Nil
			break
		}
	}

	sess.funnel.Pages = append(pages[:index], pages[index+1:]...)
	if sess.activePage >= index && sess.activePage > 0 {
		sess.activePage--
	}
	recomputeProgress(sess.funnel.Pages)

	return documentResponse(sess), nil
}

func (s *EditorService) ReorderPages(ctx context.Context, sessionID string, fromIndex, toIndex int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	pages := sess.funnel.Pages
	if fromIndex < 0 || fromIndex >= len(pages) || toIndex < 0 || toIndex >= len(pages) {
		return nil, utils.ErrInvalidPageIndex
	}

	moved := pages[fromIndex]
	pages = append(pages[:fromIndex], pages[fromIndex+1:]...)
	pages = append(pages, db_models.Page{})
	copy(pages[toIndex+1:], pages[toIndex:])
	pages[toIndex] = moved

	sess.funnel.Pages = pages
	recomputeProgress(sess.funnel.Pages)

	return documentResponse(sess), nil
}

func (s *EditorService) SetActivePage(ctx context.Context, sessionID string, index int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if index < 0 || index >= len(sess.funnel.Pages) {
		return nil, utils.ErrInvalidPageIndex
	}

	sess.activePage = index
	return documentResponse(sess), nil
}

func (s *EditorService) AddComponent(ctx context.Context, sessionID, pageID, componentType string, insertIndex *int) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	var page *db_models.Page
	for i := range sess.funnel.Pages {
		if sess.funnel.Pages[i].ID.String() == pageID {
			page = &sess.funnel.Pages[i]
			break
		}
	}
	if page == nil {
		return nil, utils.ErrPageNotFound
	}

	component, err := newComponentFromTemplate(componentType, s.idGen.NewID())
	if err != nil {
		return nil, err
	}
	component.PageID = page.ID

	at := len(page.Components)
	if insertIndex != nil {
		at = *insertIndex
		if at < 0 {
			at = 0
		}
		if at > len(page.Components) {
			at = len(page.Components)
		}
	}

	page.Components = append(page.Components, db_models.Component{})
	copy(page.Components[at+1:], page.Components[at:])
	page.Components[at] = *component

	return documentResponse(sess), nil
}

func (s *EditorService) SelectComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	pageIdx, compIdx := findComponent(sess.funnel, componentID)
	if pageIdx < 0 {
		return nil, utils.ErrComponentNotFound
	}

	sess.selected = sess.funnel.Pages[pageIdx].Components[compIdx].ID
	return documentResponse(sess), nil
}

// UpdateComponent shallow-merges the partial payloads; fields not present in
// the request are preserved.
func (s *EditorService) UpdateComponent(ctx context.Context, sessionID, componentID string, data, style map[string]interface{}) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	pageIdx, compIdx := findComponent(sess.funnel, componentID)
	if pageIdx < 0 {
		return nil, utils.ErrComponentNotFound
	}
	component := &sess.funnel.Pages[pageIdx].Components[compIdx]

	if len(data) > 0 {
		if component.Data == nil {
			component.Data = db_models.JSONMap{}
		}
		for k, v := range data {
			component.Data[k] = v
		}
	}
	if len(style) > 0 {
		if component.Style == nil {
			component.Style = db_models.JSONMap{}
		}
		for k, v := range style {
			component.Style[k] = v
		}
	}

	return documentResponse(sess), nil
}

func (s *EditorService) DuplicateComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	pageIdx, compIdx := findComponent(sess.funnel, componentID)
	if pageIdx < 0 {
		return nil, utils.ErrComponentNotFound
	}
	page := &sess.funnel.Pages[pageIdx]
	source := page.Components[compIdx]

	duplicate := db_models.Component{
		BaseModel: db_models.BaseModel{ID: s.idGen.NewID()},
		PageID:    source.PageID,
		Type:      source.Type,
		Data:      source.Data.Clone(),
		Style:     source.Style.Clone(),
	}

	page.Components = append(page.Components, db_models.Component{})
	copy(page.Components[compIdx+2:], page.Components[compIdx+1:])
	page.Components[compIdx+1] = duplicate

	return documentResponse(sess), nil
}

func (s *EditorService) DeleteComponent(ctx context.Context, sessionID, componentID string) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	pageIdx, compIdx := findComponent(sess.funnel, componentID)
	if pageIdx < 0 {
		return nil, utils.ErrComponentNotFound
	}
	page := &sess.funnel.Pages[pageIdx]

	if page.Components[compIdx].ID == sess.selected {
		sess.selected = uuid.Nil
	}
	page.Components = append(page.Components[:compIdx], page.Components[compIdx+1:]...)

	return documentResponse(sess), nil
}

// MoveComponent swaps the component with its neighbor. At a boundary, and for
// an unknown direction, the call is a logged no-op.
func (s *EditorService) MoveComponent(ctx context.Context, sessionID, componentID, direction string) (*response_models.FunnelDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	pageIdx, compIdx := findComponent(sess.funnel, componentID)
	if pageIdx < 0 {
		return nil, utils.ErrComponentNotFound
	}
	components := sess.funnel.Pages[pageIdx].Components

	switch direction {
	case "up":
		if compIdx > 0 {
			components[compIdx-1], components[compIdx] = components[compIdx], components[compIdx-1]
		}
	case "down":
		if compIdx < len(components)-1 {
			components[compIdx], components[compIdx+1] = components[compIdx+1], components[compIdx]
		}
	default:
		log.Printf("Ignoring move of component %s in unknown direction %q", componentID, direction)
	}

	return documentResponse(sess), nil
}

func (s *EditorService) newPage(pageType string) *db_models.Page {
	return &db_models.Page{
		BaseModel: db_models.BaseModel{ID: s.idGen.NewID()},
		Title:     defaultPageTitles[pageType],
		Type:      pageType,
	}
}

// recomputeProgress derives each page's progress-bar value from its position.
func recomputeProgress(pages []db_models.Page) {
	n := len(pages)
	for i := range pages {
		pages[i].Progress = int(math.Round(100 * float64(i+1) / float64(n)))
	}
}

func findComponent(funnel *db_models.Funnel, componentID string) (pageIdx, compIdx int) {
	for i := range funnel.Pages {
		for j := range funnel.Pages[i].Components {
			if funnel.Pages[i].Components[j].ID.String() == componentID {
				return i, j
			}
		}
	}
	return -1, -1
}

func documentResponse(sess *editorSession) *response_models.FunnelDocument {
	doc := &response_models.FunnelDocument{
		ID:         sess.funnel.ID.String(),
		Name:       sess.funnel.Name,
		ActivePage: sess.activePage,
		Pages:      make([]response_models.PageResponse, 0, len(sess.funnel.Pages)),
	}
	if sess.selected != uuid.Nil {
		doc.SelectedComponent = sess.selected.String()
	}

	for _, page := range sess.funnel.Pages {
		pageResp := response_models.PageResponse{
			ID:         page.ID.String(),
			Title:      page.Title,
			Type:       page.Type,
			Progress:   page.Progress,
			Components: make([]response_models.ComponentResponse, 0, len(page.Components)),
		}
		for _, component := range page.Components {
			pageResp.Components = append(pageResp.Components, response_models.ComponentResponse{
				ID:    component.ID.String(),
				Type:  component.Type,
				Data:  component.Data,
				Style: component.Style,
			})
		}
		doc.Pages = append(doc.Pages, pageResp)
	}
	return doc
}
