package dto

import (
	"github.com/google/uuid"

	"github.com/coverage-analytics/internal/domain"
)

type EfficiencyListResponse struct {
	Results []domain.EfficiencyRecord `json:"results"`
	Total   int                       `json:"total"`
}

type FieldValuesResponse struct {
	Field  string `json:"field"`
	Kind   string `json:"kind"`
	Values []any  `json:"values"`
}

// Forecast job states
const (
	JobStatusPending = "pending"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

type ForecastJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// ForecastJobStatusResponse reports a job. Result is set once the worker has
// finished, whether it succeeded or not.
type ForecastJobStatusResponse struct {
	JobID  uuid.UUID                 `json:"job_id"`
	Status string                    `json:"status"`
	Result *domain.ForecastDoneEvent `json:"result,omitempty"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
