package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"quizfunnel/internal/models/response_models"
	"quizfunnel/pkg/kvstore"
)

type HealthServiceInterface interface {
	Check(ctx context.Context) *response_models.HealthReport
}

// HealthService probes the pieces the funnel depends on. A failed probe
// lowers the score; it never aborts anything.
type HealthService struct {
	db    *gorm.DB
	bank  *QuestionBank
	store kvstore.Store
}

func NewHealthService(db *gorm.DB, bank *QuestionBank, store kvstore.Store) HealthServiceInterface {
	return &HealthService{
		db:    db,
		bank:  bank,
		store: store,
	}
}

func (h *HealthService) Check(ctx context.Context) *response_models.HealthReport {
	probes := []response_models.HealthProbe{
		h.probeDatabase(ctx),
		h.probeQuestionBank(),
		h.probeStore(),
	}

	healthy := 0
	for _, probe := range probes {
		if probe.Healthy {
			healthy++
		}
	}

	report := &response_models.HealthReport{
		Score:  100 * healthy / len(probes),
		Probes: probes,
	}
	if healthy == len(probes) {
		report.Status = "ok"
	} else {
		report.Status = "degraded"
	}
	return report
}

func (h *HealthService) probeDatabase(ctx context.Context) response_models.HealthProbe {
	probe := response_models.HealthProbe{Name: "database"}

	if h.db == nil {
		probe.Detail = "no database configured"
		return probe
	}

	start := time.Now()
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	probe.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		probe.Detail = err.Error()
		return probe
	}
	probe.Healthy = true
	return probe
}

func (h *HealthService) probeQuestionBank() response_models.HealthProbe {
	probe := response_models.HealthProbe{Name: "question_bank"}

	if h.bank == nil || h.bank.Len() == 0 {
		probe.Detail = "question bank is empty"
		return probe
	}
	probe.Healthy = true
	probe.Detail = fmt.Sprintf("%d questions loaded", h.bank.Len())
	return probe
}

func (h *HealthService) probeStore() response_models.HealthProbe {
	probe := response_models.HealthProbe{Name: "key_value_store"}

	start := time.Now()
	key := "health_check_probe"
	if err := h.store.Set(key, "ok"); err != nil {
		probe.Detail = err.Error()
		probe.LatencyMs = time.Since(start).Milliseconds()
		return probe
	}
	value, ok := h.store.Get(key)
	h.store.Remove(key)
	probe.LatencyMs = time.Since(start).Milliseconds()

	if !ok || value != "ok" {
		probe.Detail = "round trip failed"
		return probe
	}
	probe.Healthy = true
	return probe
}
