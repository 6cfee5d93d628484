package services

import (
	"context"
	"testing"

	"quizfunnel/pkg/kvstore"
)

func TestHealthCheckWithoutDatabase(t *testing.T) {
	svc := NewHealthService(nil, DefaultQuestionBank(), kvstore.NewInMemoryStore())

	report := svc.Check(context.Background())

	if report.Status != "degraded" {
		t.Fatalf("expected degraded without a database, got %s", report.Status)
	}
	if report.Score != 66 {
		t.Fatalf("expected score 66 with 2/3 probes healthy, got %d", report.Score)
	}

	byName := make(map[string]bool, len(report.Probes))
	for _, probe := range report.Probes {
		byName[probe.Name] = probe.Healthy
	}
	if byName["database"] {
		t.Fatal("database probe must fail with a nil handle")
	}
	if !byName["question_bank"] || !byName["key_value_store"] {
		t.Fatalf("expected bank and store probes healthy, got %v", byName)
	}
}

func TestHealthCheckEmptyQuestionBank(t *testing.T) {
	svc := NewHealthService(nil, &QuestionBank{}, kvstore.NewInMemoryStore())

	report := svc.Check(context.Background())

	for _, probe := range report.Probes {
		if probe.Name == "question_bank" && probe.Healthy {
			t.Fatal("empty question bank must fail its probe")
		}
	}
	if report.Score != 33 {
		t.Fatalf("expected score 33 with 1/3 probes healthy, got %d", report.Score)
	}
}

func TestHealthProbeLeavesNoResidue(t *testing.T) {
	store := kvstore.NewInMemoryStore()
	svc := NewHealthService(nil, DefaultQuestionBank(), store)

	svc.Check(context.Background())

	if _, ok := store.Get("health_check_probe"); ok {
		t.Fatal("probe key must be removed after the check")
	}
}
