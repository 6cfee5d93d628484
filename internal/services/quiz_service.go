package services

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/internal/models/response_models"
	"quizfunnel/internal/repositories"
	"quizfunnel/pkg/kvstore"
	"quizfunnel/pkg/utils"
)

// Storage keys, scoped per session by sessionKey. The base names match the
// keys the original funnel wrote to browser storage.
const (
	KeyQuizResult       = "quizResult"
	KeyStrategicAnswers = "strategicAnswers"
)

func sessionKey(base, sessionID string) string {
	return base + ":" + sessionID
}

type QuizServiceInterface interface {
	StartSession(ctx context.Context, displayName string) (*response_models.QuizSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error)
	RecordAnswer(ctx context.Context, sessionID, questionID string, optionIDs []string) error
	RecordStrategicAnswer(ctx context.Context, sessionID, questionID string, optionIDs []string) error
	Advance(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error)
	Retreat(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error)
	ComputeResult(ctx context.Context, sessionID string, clickOrder []string) (*response_models.QuizResult, error)
	Reset(ctx context.Context, sessionID string) error
	Questions() []response_models.QuizQuestion
	Styles() []string
}

// quizSession is the in-memory answer state for one respondent. The maps
// stay authoritative for the whole session; storage writes are best-effort.
type quizSession struct {
	id               uuid.UUID
	displayName      string
	currentIndex     int
	answers          map[string][]string
	strategicAnswers map[string][]string
	clickOrder       []string
	clickSeen        map[string]bool
	completed        bool
	result           *response_models.QuizResult
}

type QuizService struct {
	bank       *QuestionBank
	store      kvstore.Store
	resultRepo repositories.ResultRepositoryInterface
	idGen      utils.IDGenerator

	mu       sync.RWMutex
	sessions map[string]*quizSession
}

func NewQuizService(
	bank *QuestionBank,
	store kvstore.Store,
	resultRepo repositories.ResultRepositoryInterface,
	idGen utils.IDGenerator,
) QuizServiceInterface {
	return &QuizService{
		bank:       bank,
		store:      store,
		resultRepo: resultRepo,
		idGen:      idGen,
		sessions:   make(map[string]*quizSession),
	}
}

func (s *QuizService) Questions() []response_models.QuizQuestion {
	return s.bank.Questions
}

func (s *QuizService) Styles() []string {
	return StyleCategories
}

func (s *QuizService) StartSession(ctx context.Context, displayName string) (*response_models.QuizSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &quizSession{
		id:               s.idGen.NewID(),
		displayName:      displayName,
		answers:          make(map[string][]string),
		strategicAnswers: make(map[string][]string),
		clickSeen:        make(map[string]bool),
	}
	s.sessions[sess.id.String()] = sess

	return s.sessionResponse(sess), nil
}

func (s *QuizService) GetSession(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return s.sessionResponse(sess), nil
}

// RecordAnswer overwrites the stored selection for questionID. Invalid input
// is logged and dropped; the funnel never stops over a bad answer.
func (s *QuizService) RecordAnswer(ctx context.Context, sessionID, questionID string, optionIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return utils.ErrSessionNotFound
	}

	question := s.bank.Question(questionID)
	if question == nil {
		log.Printf("Ignoring answer for unknown question %s", questionID)
		return nil
	}
	if question.Strategic {
		log.Printf("Ignoring scored answer for strategic question %s", questionID)
		return nil
	}
	if len(optionIDs) == 0 {
		log.Printf("Ignoring empty selection for question %s", questionID)
		return nil
	}

	selection := make([]string, len(optionIDs))
	copy(selection, optionIDs)
	sess.answers[questionID] = selection

	// Track the order in which each style category was first clicked; the
	// ranking uses it to break score ties.
	for _, optionID := range optionIDs {
		option := s.bank.Option(questionID, optionID)
		if option == nil || option.StyleCategory == "" {
			continue
		}
		if !sess.clickSeen[option.StyleCategory] {
			sess.clickSeen[option.StyleCategory] = true
			sess.clickOrder = append(sess.clickOrder, option.StyleCategory)
		}
	}

	return nil
}

// RecordStrategicAnswer keeps at most the last selected option. An empty
// selection after a prior answer is discarded: once a strategic question is
// answered it cannot be deselected.
func (s *QuizService) RecordStrategicAnswer(ctx context.Context, sessionID, questionID string, optionIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return utils.ErrSessionNotFound
	}

	question := s.bank.Question(questionID)
	if question == nil {
		log.Printf("Ignoring strategic answer for unknown question %s", questionID)
		return nil
	}
	if !question.Strategic {
		log.Printf("Ignoring strategic answer for scored question %s", questionID)
		return nil
	}

	if len(optionIDs) == 0 {
		if len(sess.strategicAnswers[questionID]) > 0 {
			log.Printf("Discarding deselection of strategic question %s", questionID)
		}
		return nil
	}

	sess.strategicAnswers[questionID] = []string{optionIDs[len(optionIDs)-1]}
	return nil
}

func (s *QuizService) Advance(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	if sess.currentIndex < s.bank.Len()-1 {
		sess.currentIndex++
	} else {
		s.computeLocked(ctx, sess, nil)
	}

	return s.sessionResponse(sess), nil
}

func (s *QuizService) Retreat(ctx context.Context, sessionID string) (*response_models.QuizSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	if sess.currentIndex > 0 {
		sess.currentIndex--
	}

	return s.sessionResponse(sess), nil
}

func (s *QuizService) ComputeResult(ctx context.Context, sessionID string, clickOrder []string) (*response_models.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}

	return s.computeLocked(ctx, sess, clickOrder), nil
}

func (s *QuizService) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return utils.ErrSessionNotFound
	}

	sess.currentIndex = 0
	sess.answers = make(map[string][]string)
	sess.strategicAnswers = make(map[string][]string)
	sess.clickOrder = nil
	sess.clickSeen = make(map[string]bool)
	sess.completed = false
	sess.result = nil

	s.store.Remove(sessionKey(KeyQuizResult, sessionID))
	s.store.Remove(sessionKey(KeyStrategicAnswers, sessionID))

	return nil
}

// computeLocked tallies every scored answer into per-category counters and
// derives the ranking. Caller holds s.mu.
func (s *QuizService) computeLocked(ctx context.Context, sess *quizSession, clickOrder []string) *response_models.QuizResult {
	if clickOrder == nil {
		clickOrder = sess.clickOrder
	}

	counter := make(map[string]int, len(StyleCategories))
	total := 0
	for questionID, optionIDs := range sess.answers {
		for _, optionID := range optionIDs {
			option := s.bank.Option(questionID, optionID)
			if option == nil || option.StyleCategory == "" {
				continue
			}
			points := option.Points
			if points == 0 {
				points = 1
			}
			counter[option.StyleCategory] += points
			total += points
		}
	}

	ranking := rankStyles(counter, total, clickOrder)

	result := &response_models.QuizResult{
		PrimaryStyle:    ranking[0],
		SecondaryStyles: ranking[1:],
		TotalSelections: total,
		DisplayName:     sess.displayName,
	}
	sess.result = result
	sess.completed = true

	s.persistLocked(ctx, sess)

	return result
}

// rankStyles sorts descending by score. Equal scores are ordered by first
// click; categories never clicked come after clicked ones of the same score,
// in stable (declaration) order.
func rankStyles(counter map[string]int, total int, clickOrder []string) []response_models.StyleResult {
	results := make([]response_models.StyleResult, 0, len(StyleCategories))
	for _, category := range StyleCategories {
		score := counter[category]
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(100 * float64(score) / float64(total)))
		}
		results = append(results, response_models.StyleResult{
			Category:   category,
			Score:      score,
			Percentage: percentage,
		})
	}

	clickPos := make(map[string]int, len(clickOrder))
	for i, category := range clickOrder {
		if _, ok := clickPos[category]; !ok {
			clickPos[category] = i
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		pi, iClicked := clickPos[results[i].Category]
		pj, jClicked := clickPos[results[j].Category]
		if iClicked && jClicked {
			return pi < pj
		}
		if iClicked != jClicked {
			return iClicked
		}
		return false
	})

	return results
}

// persistLocked writes the result and strategic answers to the key-value
// store and archives a row for reporting. Every write is best-effort; the
// in-memory session stays authoritative.
func (s *QuizService) persistLocked(ctx context.Context, sess *quizSession) {
	sessionID := sess.id.String()

	if raw, err := json.Marshal(sess.result); err != nil {
		log.Printf("Error encoding quiz result for session %s: %v", sessionID, err)
	} else if err := s.store.Set(sessionKey(KeyQuizResult, sessionID), string(raw)); err != nil {
		log.Printf("Error persisting quiz result for session %s: %v", sessionID, err)
	}

	if raw, err := json.Marshal(sess.strategicAnswers); err != nil {
		log.Printf("Error encoding strategic answers for session %s: %v", sessionID, err)
	} else if err := s.store.Set(sessionKey(KeyStrategicAnswers, sessionID), string(raw)); err != nil {
		log.Printf("Error persisting strategic answers for session %s: %v", sessionID, err)
	}

	secondary := make([]string, 0, len(sess.result.SecondaryStyles))
	for _, style := range sess.result.SecondaryStyles {
		secondary = append(secondary, style.Category)
	}

	record := &db_models.QuizResultRecord{
		SessionID:         sess.id,
		DisplayName:       sess.displayName,
		PrimaryStyle:      sess.result.PrimaryStyle.Category,
		PrimaryScore:      sess.result.PrimaryStyle.Score,
		PrimaryPercentage: sess.result.PrimaryStyle.Percentage,
		SecondaryStyles:   secondary,
		TotalSelections:   sess.result.TotalSelections,
		Breakdown: db_models.JSONMap{
			"ranking": append([]response_models.StyleResult{sess.result.PrimaryStyle}, sess.result.SecondaryStyles...),
		},
	}
	if err := s.resultRepo.Insert(ctx, record); err != nil {
		log.Printf("Error archiving quiz result for session %s: %v", sessionID, err)
	}
}

func (s *QuizService) sessionResponse(sess *quizSession) *response_models.QuizSessionResponse {
	resp := &response_models.QuizSessionResponse{
		SessionID:   sess.id.String(),
		CurrentStep: sess.currentIndex + 1,
		TotalSteps:  s.bank.Len(),
		IsComplete:  sess.completed,
		Result:      sess.result,
	}
	if !sess.completed && sess.currentIndex < s.bank.Len() {
		resp.Question = &s.bank.Questions[sess.currentIndex]
	}
	return resp
}
