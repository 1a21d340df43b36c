package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/repository/cache"
	"github.com/coverage-analytics/internal/usecase/dto"
)

var _ ForecastRunner = (*TemporalUseCase)(nil)

// TemporalUseCase runs trend analysis and forecasts on inline or stored
// series, and manages asynchronous forecast jobs.
type TemporalUseCase struct {
	seriesRepo repository.TimeSeriesRepository
	streamRepo repository.StreamRepository
	cacheRepo  repository.CacheRepository
	analyzer   *analytics.TemporalAnalyzer
	cache      resultCache
	jobTTL     time.Duration
	logger     *zap.Logger
}

// NewTemporalUseCase builds the use case. streamRepo may be nil, in which case
// jobs cannot be enqueued; cacheRepo may be nil, in which case job results are
// not retained.
func NewTemporalUseCase(
	seriesRepo repository.TimeSeriesRepository,
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	analyzer *analytics.TemporalAnalyzer,
	ttl time.Duration,
	logger *zap.Logger,
) *TemporalUseCase {
	return &TemporalUseCase{
		seriesRepo: seriesRepo,
		streamRepo: streamRepo,
		cacheRepo:  cacheRepo,
		analyzer:   analyzer,
		cache:      newResultCache(cacheRepo, ttl, logger),
		jobTTL:     ttl,
		logger:     logger,
	}
}

func (uc *TemporalUseCase) Trend(ctx context.Context, req dto.TemporalRequest) (*domain.TrendAnalysis, error) {
	stored := len(req.Series) == 0
	key := cache.Key("trend", req.Municipio, req.Vaccine)

	if stored {
		var cached domain.TrendAnalysis
		if uc.cache.load(ctx, key, &cached) {
			return &cached, nil
		}
	}

	series, err := uc.series(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.analyzer.AnalyzeTrend(series)
	if err != nil {
		return nil, err
	}

	if stored {
		uc.cache.store(ctx, key, analysis)
	}
	return analysis, nil
}

func (uc *TemporalUseCase) Forecast(ctx context.Context, req dto.TemporalRequest) (*domain.Forecast, error) {
	stored := len(req.Series) == 0
	key := cache.Key("forecast", req.Municipio, req.Vaccine)

	if stored {
		var cached domain.Forecast
		if uc.cache.load(ctx, key, &cached) {
			return &cached, nil
		}
	}

	series, err := uc.series(ctx, req)
	if err != nil {
		return nil, err
	}

	forecast, err := uc.analyzer.Forecast(series)
	if err != nil {
		return nil, err
	}

	if stored {
		uc.cache.store(ctx, key, forecast)
	}
	return forecast, nil
}

// series resolves the request into observations: the inline series when
// present, otherwise the stored history of municipio/vaccine.
func (uc *TemporalUseCase) series(ctx context.Context, req dto.TemporalRequest) ([]domain.TimeSeriesPoint, error) {
	if len(req.Series) > 0 {
		points, err := req.Points()
		if err != nil {
			return nil, errors.InvalidInput("%s", err.Error())
		}
		return points, nil
	}
	if req.Municipio == "" || req.Vaccine == "" {
		return nil, errors.InvalidInput("either series or municipio and vaccine must be provided")
	}

	vaccine, err := domain.ParseVaccine(req.Vaccine)
	if err != nil {
		return nil, errors.InvalidInput("%s", err.Error())
	}
	return uc.loadSeries(ctx, req.Municipio, vaccine)
}

func (uc *TemporalUseCase) loadSeries(ctx context.Context, municipio string, vaccine domain.Vaccine) ([]domain.TimeSeriesPoint, error) {
	points, err := uc.seriesRepo.GetSeries(ctx, municipio, vaccine)
	if err != nil {
		return nil, fmt.Errorf("load coverage series: %w", err)
	}
	uc.logger.Debug("Coverage series loaded",
		zap.String("municipio", municipio),
		zap.String("vaccine", vaccine.String()),
		zap.Int("points", len(points)),
	)
	return points, nil
}

// EnqueueForecast publishes a forecast job for the worker.
func (uc *TemporalUseCase) EnqueueForecast(ctx context.Context, req dto.ForecastJobRequest) (*dto.ForecastJobResponse, error) {
	if uc.streamRepo == nil {
		return nil, errors.ErrInternalServer.WithMessage("forecast jobs are not available")
	}

	event := domain.ForecastJobEvent{
		JobID:     uuid.New(),
		Municipio: req.Municipio,
		Vaccine:   req.Vaccine,
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamForecastRequest, event); err != nil {
		return nil, fmt.Errorf("enqueue forecast job: %w", err)
	}

	uc.logger.Info("Forecast job enqueued",
		zap.String("job_id", event.JobID.String()),
		zap.String("municipio", event.Municipio),
		zap.String("vaccine", event.Vaccine),
	)

	return &dto.ForecastJobResponse{JobID: event.JobID, Status: dto.JobStatusPending}, nil
}

// ForecastJob reports a job. Unknown or unfinished jobs are pending.
func (uc *TemporalUseCase) ForecastJob(ctx context.Context, jobID uuid.UUID) (*dto.ForecastJobStatusResponse, error) {
	resp := &dto.ForecastJobStatusResponse{JobID: jobID, Status: dto.JobStatusPending}
	if uc.cacheRepo == nil {
		return resp, nil
	}

	var done domain.ForecastDoneEvent
	hit, err := uc.cacheRepo.GetJSON(ctx, cache.ForecastJobKey(jobID.String()), &done)
	if err != nil {
		return nil, fmt.Errorf("read forecast job: %w", err)
	}
	if !hit {
		return resp, nil
	}

	resp.Result = &done
	resp.Status = dto.JobStatusDone
	if done.Error != "" {
		resp.Status = dto.JobStatusFailed
	}
	return resp, nil
}

// RunForecastJob executes a job and retains its outcome for ForecastJob.
func (uc *TemporalUseCase) RunForecastJob(ctx context.Context, event *domain.ForecastJobEvent) *domain.ForecastDoneEvent {
	done := &domain.ForecastDoneEvent{
		JobID:     event.JobID,
		Municipio: event.Municipio,
		Vaccine:   event.Vaccine,
	}

	forecast, err := uc.runForecast(ctx, event)
	if err != nil {
		done.Error = err.Error()
		done.ErrorCode = errors.CodeInternalServer
		if appErr, ok := errors.As(err); ok {
			done.Error = appErr.Message
			done.ErrorCode = appErr.Code
		}
	} else {
		done.Forecast = forecast
	}

	if uc.cacheRepo != nil && uc.jobTTL > 0 {
		if err := uc.cacheRepo.SetJSON(ctx, cache.ForecastJobKey(event.JobID.String()), done, uc.jobTTL); err != nil {
			uc.logger.Warn("Failed to store forecast job result",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
		}
	}
	return done
}

func (uc *TemporalUseCase) runForecast(ctx context.Context, event *domain.ForecastJobEvent) (*domain.Forecast, error) {
	vaccine, err := domain.ParseVaccine(event.Vaccine)
	if err != nil {
		return nil, errors.InvalidInput("%s", err.Error())
	}

	series, err := uc.loadSeries(ctx, event.Municipio, vaccine)
	if err != nil {
		return nil, err
	}
	return uc.analyzer.Forecast(series)
}
