package usecase

import (
	"context"

	"github.com/coverage-analytics/internal/domain"
)

// ForecastRunner executes a queued forecast job. Failures are reported inside
// the returned event so they can be published like successes.
type ForecastRunner interface {
	RunForecastJob(ctx context.Context, event *domain.ForecastJobEvent) *domain.ForecastDoneEvent
}
