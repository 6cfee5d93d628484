package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/models/response_models"
	"quizfunnel/pkg/utils"
)

type fakeFunnelRepository struct {
	funnels map[string]*db_models.Funnel
	saved   *db_models.Funnel
	err     error
}

func newFakeFunnelRepository() *fakeFunnelRepository {
	return &fakeFunnelRepository{funnels: make(map[string]*db_models.Funnel)}
}

func (f *fakeFunnelRepository) Create(ctx context.Context, funnel *db_models.Funnel) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.funnels[funnel.ID.String()] = funnel
	return funnel.ID, nil
}

func (f *fakeFunnelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.funnels, id.String())
	return f.err
}

func (f *fakeFunnelRepository) GetByIDWithPages(ctx context.Context, id string) (*db_models.Funnel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.funnels[id], nil
}

func (f *fakeFunnelRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Funnel, error) {
	out := make([]db_models.Funnel, 0, len(f.funnels))
	for _, funnel := range f.funnels {
		out = append(out, *funnel)
	}
	return out, f.err
}

func (f *fakeFunnelRepository) SaveDocument(ctx context.Context, funnel *db_models.Funnel) error {
	if f.err != nil {
		return f.err
	}
	f.saved = funnel
	return nil
}

func newTestEditor(t *testing.T) (EditorServiceInterface, *fakeFunnelRepository, string) {
	t.Helper()
	repo := newFakeFunnelRepository()
	svc := NewEditorService(repo, utils.NewSequentialIDGenerator())

	resp, err := svc.OpenSession(context.Background(), "")
	if err != nil {
		t.Fatalf("OpenSession returned error: %v", err)
	}
	return svc, repo, resp.SessionID
}

func pageTypes(doc *response_models.FunnelDocument) []string {
	types := make([]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		types = append(types, p.Type)
	}
	return types
}

func TestOpenSessionCreatesDraftFunnel(t *testing.T) {
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "Novo Funil" {
		t.Fatalf("expected draft name, got %q", doc.Name)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Type != db_models.PageTypeIntro {
		t.Fatalf("expected single intro page, got %v", pageTypes(doc))
	}
	if doc.Pages[0].Progress != 100 {
		t.Fatalf("single page should show 100%% progress, got %d", doc.Pages[0].Progress)
	}
}

func TestOpenSessionUnknownFunnel(t *testing.T) {
	repo := newFakeFunnelRepository()
	svc := NewEditorService(repo, utils.NewSequentialIDGenerator())

	_, err := svc.OpenSession(context.Background(), uuid.New().String())
	if err != utils.ErrFunnelNotFound {
		t.Fatalf("expected ErrFunnelNotFound, got %v", err)
	}
}

func TestAddPageAppendsAndInserts(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.AddPage(ctx, sessionID, db_models.PageTypeResult, nil)
	if err != nil {
		t.Fatal(err)
	}

	after := 0
	doc, err = svc.AddPage(ctx, sessionID, db_models.PageTypeQuestion, &after)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{db_models.PageTypeIntro, db_models.PageTypeQuestion, db_models.PageTypeResult}
	got := pageTypes(doc)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected page order %v, got %v", want, got)
		}
	}

	// Progress follows position: 33, 67, 100.
	wantProgress := []int{33, 67, 100}
	for i, p := range doc.Pages {
		if p.Progress != wantProgress[i] {
			t.Fatalf("expected progress %v, got %d at index %d", wantProgress, p.Progress, i)
		}
	}
}

func TestAddPageValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	if _, err := svc.AddPage(ctx, sessionID, "carousel", nil); err != utils.ErrUnknownPageType {
		t.Fatalf("expected ErrUnknownPageType, got %v", err)
	}

	outOfRange := 5
	if _, err := svc.AddPage(ctx, sessionID, db_models.PageTypeQuestion, &outOfRange); err != utils.ErrInvalidPageIndex {
		t.Fatalf("expected ErrInvalidPageIndex, got %v", err)
	}
}

func TestDuplicatePageAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[0].ID

	if _, err = svc.AddComponent(ctx, sessionID, pageID, "title", nil); err != nil {
		t.Fatal(err)
	}
	if _, err = svc.AddComponent(ctx, sessionID, pageID, "button", nil); err != nil {
		t.Fatal(err)
	}

	doc, err = svc.DuplicatePage(ctx, sessionID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}

	source, copyPage := doc.Pages[0], doc.Pages[1]
	if copyPage.ID == source.ID {
		t.Fatal("duplicated page must get a fresh id")
	}
	if copyPage.Title != source.Title || copyPage.Type != source.Type {
		t.Fatal("duplicated page must keep title and type")
	}
	if len(copyPage.Components) != len(source.Components) {
		t.Fatalf("expected %d components, got %d", len(source.Components), len(copyPage.Components))
	}
	for i := range copyPage.Components {
		if copyPage.Components[i].ID == source.Components[i].ID {
			t.Fatal("duplicated components must get fresh ids")
		}
		if copyPage.Components[i].Type != source.Components[i].Type {
			t.Fatal("duplicated components must keep their type")
		}
	}
}

func TestDeletePageRefusesLastPage(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	if _, err := svc.DeletePage(ctx, sessionID, 0); err != utils.ErrLastPage {
		t.Fatalf("expected ErrLastPage, got %v", err)
	}
}

func TestDeletePageAdjustsActivePage(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	for _, pt := range []string{db_models.PageTypeQuestion, db_models.PageTypeResult} {
		if _, err := svc.AddPage(ctx, sessionID, pt, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.SetActivePage(ctx, sessionID, 2); err != nil {
		t.Fatal(err)
	}

	doc, err := svc.DeletePage(ctx, sessionID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if doc.ActivePage != 1 {
		t.Fatalf("active page should shift left with the deletion, got %d", doc.ActivePage)
	}
}

func TestDeletePageClearsSelectionOnThatPage(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.AddPage(ctx, sessionID, db_models.PageTypeQuestion, nil)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[1].ID

	doc, err = svc.AddComponent(ctx, sessionID, pageID, "text", nil)
	if err != nil {
		t.Fatal(err)
	}
	componentID := doc.Pages[1].Components[0].ID

	if _, err = svc.SelectComponent(ctx, sessionID, componentID); err != nil {
		t.Fatal(err)
	}

	doc, err = svc.DeletePage(ctx, sessionID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if doc.SelectedComponent != "" {
		t.Fatalf("selection should be cleared, got %q", doc.SelectedComponent)
	}
}

func TestReorderPagesPreservesPageSet(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	for _, pt := range []string{db_models.PageTypeQuestion, db_models.PageTypeLoading, db_models.PageTypeResult} {
		if _, err := svc.AddPage(ctx, sessionID, pt, nil); err != nil {
			t.Fatal(err)
		}
	}

	before, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := svc.ReorderPages(ctx, sessionID, 3, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{db_models.PageTypeResult, db_models.PageTypeIntro, db_models.PageTypeQuestion, db_models.PageTypeLoading}
	got := pageTypes(doc)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}

	seen := make(map[string]bool, len(before.Pages))
	for _, p := range before.Pages {
		seen[p.ID] = true
	}
	for _, p := range doc.Pages {
		if !seen[p.ID] {
			t.Fatalf("reorder invented page %s", p.ID)
		}
	}
	if len(doc.Pages) != len(before.Pages) {
		t.Fatalf("reorder changed page count: %d != %d", len(doc.Pages), len(before.Pages))
	}
}

func TestAddComponentClampsInsertIndex(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[0].ID

	if _, err = svc.AddComponent(ctx, sessionID, pageID, "title", nil); err != nil {
		t.Fatal(err)
	}

	tooFar := 99
	doc, err = svc.AddComponent(ctx, sessionID, pageID, "button", &tooFar)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Pages[0].Components[1].Type; got != "button" {
		t.Fatalf("out-of-range index should clamp to the end, got %s at tail", got)
	}

	negative := -3
	doc, err = svc.AddComponent(ctx, sessionID, pageID, "image", &negative)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Pages[0].Components[0].Type; got != "image" {
		t.Fatalf("negative index should clamp to the front, got %s at head", got)
	}
}

func TestAddComponentUnknownType(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = svc.AddComponent(ctx, sessionID, doc.Pages[0].ID, "hologram", nil); err != utils.ErrUnknownComponentType {
		t.Fatalf("expected ErrUnknownComponentType, got %v", err)
	}
}

func TestUpdateComponentShallowMerge(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[0].ID

	doc, err = svc.AddComponent(ctx, sessionID, pageID, "button", nil)
	if err != nil {
		t.Fatal(err)
	}
	componentID := doc.Pages[0].Components[0].ID
	originalStyle := doc.Pages[0].Components[0].Style

	doc, err = svc.UpdateComponent(ctx, sessionID, componentID,
		map[string]interface{}{"text": "Quero começar"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	component := doc.Pages[0].Components[0]
	if component.Data["text"] != "Quero começar" {
		t.Fatalf("expected updated text, got %v", component.Data["text"])
	}
	// Fields absent from the payload stay untouched.
	for k, v := range originalStyle {
		if component.Style[k] != v {
			t.Fatalf("style key %s changed from %v to %v", k, v, component.Style[k])
		}
	}
}

func TestDeleteComponentClearsSelection(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[0].ID

	doc, err = svc.AddComponent(ctx, sessionID, pageID, "text", nil)
	if err != nil {
		t.Fatal(err)
	}
	componentID := doc.Pages[0].Components[0].ID

	doc, err = svc.SelectComponent(ctx, sessionID, componentID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.SelectedComponent != componentID {
		t.Fatalf("expected selection %s, got %s", componentID, doc.SelectedComponent)
	}

	doc, err = svc.DeleteComponent(ctx, sessionID, componentID)
	if err != nil {
		t.Fatal(err)
	}
	if doc.SelectedComponent != "" {
		t.Fatalf("selection should be cleared after delete, got %q", doc.SelectedComponent)
	}
	if len(doc.Pages[0].Components) != 0 {
		t.Fatalf("expected empty page, got %d components", len(doc.Pages[0].Components))
	}
}

func TestMoveComponentSwapsAndStopsAtBoundaries(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	doc, err := svc.Document(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	pageID := doc.Pages[0].ID

	for _, ct := range []string{"title", "text", "button"} {
		if doc, err = svc.AddComponent(ctx, sessionID, pageID, ct, nil); err != nil {
			t.Fatal(err)
		}
	}
	titleID := doc.Pages[0].Components[0].ID

	// Up from the top is a no-op.
	doc, err = svc.MoveComponent(ctx, sessionID, titleID, "up")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Pages[0].Components[0].ID != titleID {
		t.Fatal("move up at top boundary must not change order")
	}

	doc, err = svc.MoveComponent(ctx, sessionID, titleID, "down")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Pages[0].Components[1].ID != titleID {
		t.Fatal("expected component to move down one slot")
	}

	// Unknown direction is a logged no-op.
	doc, err = svc.MoveComponent(ctx, sessionID, titleID, "sideways")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Pages[0].Components[1].ID != titleID {
		t.Fatal("unknown direction must not change order")
	}
}

func TestSaveWritesDocumentThroughRepository(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessionID := newTestEditor(t)

	if _, err := svc.AddPage(ctx, sessionID, db_models.PageTypeResult, nil); err != nil {
		t.Fatal(err)
	}

	if err := svc.Save(ctx, sessionID); err != nil {
		t.Fatal(err)
	}
	if repo.saved == nil {
		t.Fatal("expected document handed to repository")
	}
	if len(repo.saved.Pages) != 2 {
		t.Fatalf("expected 2 pages saved, got %d", len(repo.saved.Pages))
	}
}

func TestSaveReportsDatabaseError(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessionID := newTestEditor(t)

	repo.err = utils.ErrDatabaseError
	if err := svc.Save(ctx, sessionID); err != utils.ErrDatabaseError {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
}

func TestCloseSessionForgetsDocument(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionID := newTestEditor(t)

	if err := svc.CloseSession(ctx, sessionID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Document(ctx, sessionID); err != utils.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}
}
