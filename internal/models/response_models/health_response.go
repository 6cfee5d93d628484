package response_models

type HealthProbe struct {
	Name      string `json:"name"`
	Healthy   bool   `json:"healthy"`
	LatencyMs int64  `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

type HealthReport struct {
	Status string        `json:"status"` // "ok" or "degraded"
	Score  int           `json:"score"`  // 0-100
	Probes []HealthProbe `json:"probes"`
}
