package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/analytics"
	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/usecase/dto"
)

type SimulationUseCase struct {
	dataset   *DatasetUseCase
	simulator *analytics.Simulator
	logger    *zap.Logger
}

func NewSimulationUseCase(dataset *DatasetUseCase, simulator *analytics.Simulator, logger *zap.Logger) *SimulationUseCase {
	return &SimulationUseCase{
		dataset:   dataset,
		simulator: simulator,
		logger:    logger,
	}
}

// Run projects coverage for a municipality with and without interventions.
func (uc *SimulationUseCase) Run(ctx context.Context, req dto.SimulationRequest) (*domain.SimulationResult, error) {
	vaccine, err := domain.ParseVaccine(req.Vaccine)
	if err != nil {
		return nil, errors.InvalidInput("%s", err.Error())
	}

	record, err := uc.dataset.Municipality(ctx, req.Municipio)
	if err != nil {
		return nil, err
	}

	result, err := uc.simulator.Run(*record, vaccine, req.Interventions())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Simulation completed",
		zap.String("municipio", result.Municipio),
		zap.String("vaccine", vaccine.String()),
		zap.Float64("final_coverage", result.FinalCoverage),
		zap.Float64("improvement", result.Improvement),
	)
	return result, nil
}
