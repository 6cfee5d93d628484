package services

import (
	"context"
	"encoding/json"
	"testing"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/repositories"
	"quizfunnel/pkg/kvstore"
	"quizfunnel/pkg/utils"
)

type fakeResultRepository struct {
	records []*db_models.QuizResultRecord
	err     error
}

func (f *fakeResultRepository) Insert(ctx context.Context, record *db_models.QuizResultRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeResultRepository) List(ctx context.Context, page, pageSize int) ([]db_models.QuizResultRecord, error) {
	out := make([]db_models.QuizResultRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResultRepository) CountByPrimaryStyle(ctx context.Context) ([]repositories.StyleCountRow, error) {
	return nil, nil
}

func newTestQuizService(repo *fakeResultRepository) (QuizServiceInterface, kvstore.Store) {
	store := kvstore.NewInMemoryStore()
	svc := NewQuizService(DefaultQuestionBank(), store, repo, utils.NewSequentialIDGenerator())
	return svc, store
}

func startSession(t *testing.T, svc QuizServiceInterface) string {
	t.Helper()
	resp, err := svc.StartSession(context.Background(), "Maria")
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	return resp.SessionID
}

func TestRecordAnswerUnknownSession(t *testing.T) {
	svc, _ := newTestQuizService(&fakeResultRepository{})

	err := svc.RecordAnswer(context.Background(), "missing", "q1", []string{"q1-o1"})
	if err != utils.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRecordAnswerIgnoresInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	tests := []struct {
		name       string
		questionID string
		optionIDs  []string
	}{
		{"unknown question", "q99", []string{"q99-o1"}},
		{"strategic question", "s1", []string{"s1-o1"}},
		{"empty selection", "q1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.RecordAnswer(ctx, sessionID, tt.questionID, tt.optionIDs); err != nil {
				t.Fatalf("expected silent no-op, got error: %v", err)
			}
		})
	}

	result, err := svc.ComputeResult(ctx, sessionID, nil)
	if err != nil {
		t.Fatalf("ComputeResult returned error: %v", err)
	}
	if result.TotalSelections != 0 {
		t.Fatalf("expected no recorded selections, got %d", result.TotalSelections)
	}
}

func TestTotalSelectionsSumsCardinalities(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	if err := svc.RecordAnswer(ctx, sessionID, "q1", []string{"q1-o1", "q1-o2", "q1-o3"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordAnswer(ctx, sessionID, "q2", []string{"q2-o1", "q2-o5"}); err != nil {
		t.Fatal(err)
	}
	// Re-answering a question overwrites the previous selection.
	if err := svc.RecordAnswer(ctx, sessionID, "q2", []string{"q2-o5"}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.ComputeResult(ctx, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalSelections != 4 {
		t.Fatalf("expected 4 total selections, got %d", result.TotalSelections)
	}
}

func TestComputeResultSingleDominantStyle(t *testing.T) {
	ctx := context.Background()
	repo := &fakeResultRepository{}
	svc, store := newTestQuizService(repo)
	sessionID := startSession(t, svc)

	// Option 5 of every scored question maps to Romântico.
	for _, q := range []string{"q1", "q2", "q3", "q4", "q5", "q6"} {
		if err := svc.RecordAnswer(ctx, sessionID, q, []string{q + "-o5"}); err != nil {
			t.Fatal(err)
		}
	}

	result, err := svc.ComputeResult(ctx, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.PrimaryStyle.Category != "Romântico" {
		t.Fatalf("expected primary Romântico, got %s", result.PrimaryStyle.Category)
	}
	if result.PrimaryStyle.Score != 6 {
		t.Fatalf("expected score 6, got %d", result.PrimaryStyle.Score)
	}
	if result.PrimaryStyle.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d", result.PrimaryStyle.Percentage)
	}
	if len(result.SecondaryStyles) != len(StyleCategories)-1 {
		t.Fatalf("expected %d secondary styles, got %d", len(StyleCategories)-1, len(result.SecondaryStyles))
	}
	for _, s := range result.SecondaryStyles {
		if s.Score != 0 || s.Percentage != 0 {
			t.Fatalf("expected zeroed secondary style, got %+v", s)
		}
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(repo.records))
	}
	if repo.records[0].PrimaryStyle != "Romântico" {
		t.Fatalf("archived record has primary %s", repo.records[0].PrimaryStyle)
	}

	if _, ok := store.Get(sessionKey(KeyQuizResult, sessionID)); !ok {
		t.Fatal("expected quiz result persisted to store")
	}
}

func TestComputeResultPercentageRounding(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	// Natural twice, Clássico once: 67% / 33% after rounding.
	if err := svc.RecordAnswer(ctx, sessionID, "q1", []string{"q1-o1"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordAnswer(ctx, sessionID, "q2", []string{"q2-o1"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordAnswer(ctx, sessionID, "q3", []string{"q3-o2"}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.ComputeResult(ctx, sessionID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.PrimaryStyle.Category != "Natural" || result.PrimaryStyle.Percentage != 67 {
		t.Fatalf("expected Natural at 67%%, got %s at %d%%", result.PrimaryStyle.Category, result.PrimaryStyle.Percentage)
	}
	if result.SecondaryStyles[0].Category != "Clássico" || result.SecondaryStyles[0].Percentage != 33 {
		t.Fatalf("expected Clássico at 33%%, got %s at %d%%",
			result.SecondaryStyles[0].Category, result.SecondaryStyles[0].Percentage)
	}
}

func TestRankStylesClickOrderTieBreak(t *testing.T) {
	counter := map[string]int{
		"Natural":  2,
		"Clássico": 2,
		"Elegante": 1,
	}

	ranking := rankStyles(counter, 5, []string{"Clássico", "Natural", "Elegante"})

	got := []string{ranking[0].Category, ranking[1].Category, ranking[2].Category}
	want := []string{"Clássico", "Natural", "Elegante"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ranking %v, got %v", want, got)
		}
	}
}

func TestRankStylesClickedBeatsUnclickedOnTie(t *testing.T) {
	// Natural and Romântico tie; only Romântico appears in the click order.
	counter := map[string]int{
		"Natural":   3,
		"Romântico": 3,
	}

	ranking := rankStyles(counter, 6, []string{"Romântico"})

	if ranking[0].Category != "Romântico" {
		t.Fatalf("expected clicked category first, got %s", ranking[0].Category)
	}
	if ranking[1].Category != "Natural" {
		t.Fatalf("expected Natural second, got %s", ranking[1].Category)
	}
}

func TestRankStylesEmptySelections(t *testing.T) {
	ranking := rankStyles(map[string]int{}, 0, nil)

	if len(ranking) != len(StyleCategories) {
		t.Fatalf("expected %d entries, got %d", len(StyleCategories), len(ranking))
	}
	// With nothing clicked the ranking follows declaration order.
	for i, category := range StyleCategories {
		if ranking[i].Category != category {
			t.Fatalf("expected %s at position %d, got %s", category, i, ranking[i].Category)
		}
		if ranking[i].Percentage != 0 {
			t.Fatalf("expected 0%% with no selections, got %d", ranking[i].Percentage)
		}
	}
}

func TestStrategicAnswerKeepsLastOption(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	if err := svc.RecordStrategicAnswer(ctx, sessionID, "s1", []string{"s1-o1", "s1-o2", "s1-o3"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ComputeResult(ctx, sessionID, nil); err != nil {
		t.Fatal(err)
	}

	raw, ok := store.Get(sessionKey(KeyStrategicAnswers, sessionID))
	if !ok {
		t.Fatal("expected strategic answers persisted to store")
	}

	var persisted map[string][]string
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted strategic answers are not valid JSON: %v", err)
	}
	if got := persisted["s1"]; len(got) != 1 || got[0] != "s1-o3" {
		t.Fatalf("expected only the last option to survive, got %v", got)
	}
}

func TestStrategicAnswerIgnoresDeselection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	if err := svc.RecordStrategicAnswer(ctx, sessionID, "s2", []string{"s2-o2"}); err != nil {
		t.Fatal(err)
	}
	// A later empty selection must not clear the stored answer.
	if err := svc.RecordStrategicAnswer(ctx, sessionID, "s2", nil); err != nil {
		t.Fatal(err)
	}

	impl := svc.(*QuizService)
	impl.mu.RLock()
	answers := impl.sessions[sessionID].strategicAnswers["s2"]
	impl.mu.RUnlock()

	if len(answers) != 1 || answers[0] != "s2-o2" {
		t.Fatalf("expected answer to survive deselection, got %v", answers)
	}
}

func TestStrategicAnswerRejectsScoredQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	if err := svc.RecordStrategicAnswer(ctx, sessionID, "q1", []string{"q1-o1"}); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}

	impl := svc.(*QuizService)
	impl.mu.RLock()
	defer impl.mu.RUnlock()
	if len(impl.sessions[sessionID].strategicAnswers) != 0 {
		t.Fatal("scored question must not land in strategic answers")
	}
}

func TestAdvanceAndRetreatClampToBounds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	resp, err := svc.Retreat(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.CurrentStep != 1 {
		t.Fatalf("retreat at first step should stay at 1, got %d", resp.CurrentStep)
	}

	total := resp.TotalSteps
	for i := 0; i < total-1; i++ {
		if resp, err = svc.Advance(ctx, sessionID); err != nil {
			t.Fatal(err)
		}
	}
	if resp.CurrentStep != total {
		t.Fatalf("expected to reach step %d, got %d", total, resp.CurrentStep)
	}
	if resp.IsComplete {
		t.Fatal("quiz must not complete before advancing past the last step")
	}

	// Advancing at the last step computes the result instead of moving on.
	resp, err = svc.Advance(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsComplete {
		t.Fatal("expected quiz to be complete")
	}
	if resp.Result == nil {
		t.Fatal("expected a computed result")
	}
}

func TestResetClearsSessionAndStore(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuizService(&fakeResultRepository{})
	sessionID := startSession(t, svc)

	if err := svc.RecordAnswer(ctx, sessionID, "q1", []string{"q1-o5"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordStrategicAnswer(ctx, sessionID, "s1", []string{"s1-o1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ComputeResult(ctx, sessionID, nil); err != nil {
		t.Fatal(err)
	}

	if err := svc.Reset(ctx, sessionID); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.IsComplete || resp.Result != nil || resp.CurrentStep != 1 {
		t.Fatalf("expected pristine session after reset, got %+v", resp)
	}

	if _, ok := store.Get(sessionKey(KeyQuizResult, sessionID)); ok {
		t.Fatal("quiz result key should be removed on reset")
	}
	if _, ok := store.Get(sessionKey(KeyStrategicAnswers, sessionID)); ok {
		t.Fatal("strategic answers key should be removed on reset")
	}
}

func TestComputeResultPersistsBestEffort(t *testing.T) {
	ctx := context.Background()
	repo := &fakeResultRepository{err: utils.ErrDatabaseError}
	svc, _ := newTestQuizService(repo)
	sessionID := startSession(t, svc)

	if err := svc.RecordAnswer(ctx, sessionID, "q1", []string{"q1-o1"}); err != nil {
		t.Fatal(err)
	}

	// A failing archive write must not surface to the respondent.
	result, err := svc.ComputeResult(ctx, sessionID, nil)
	if err != nil {
		t.Fatalf("expected result despite repository failure, got %v", err)
	}
	if result.PrimaryStyle.Category != "Natural" {
		t.Fatalf("expected Natural, got %s", result.PrimaryStyle.Category)
	}
}

func TestSequentialIDsMakeDistinctSessions(t *testing.T) {
	svc, _ := newTestQuizService(&fakeResultRepository{})

	first := startSession(t, svc)
	second := startSession(t, svc)
	if first == second {
		t.Fatal("expected distinct session ids")
	}
}
