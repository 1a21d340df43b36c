package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/domain/repository"
	"github.com/coverage-analytics/internal/pkg/errors"
)

// municipalityRepository serves a dataset decoded once from a JSON array of
// records. The slice is never mutated after load.
type municipalityRepository struct {
	records []domain.MunicipalityRecord
	meta    domain.DatasetMeta
	logger  *zap.Logger
}

func NewMunicipalityRepository(path string, logger *zap.Logger) (repository.MunicipalityRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var records []domain.MunicipalityRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}

	logger.Info("Dataset loaded",
		zap.String("path", path),
		zap.Int("municipalities", len(records)),
	)

	return newMunicipalityRepository(records, logger), nil
}

func newMunicipalityRepository(records []domain.MunicipalityRecord, logger *zap.Logger) *municipalityRepository {
	return &municipalityRepository{
		records: records,
		meta:    buildMeta(records),
		logger:  logger,
	}
}

// List returns a copy so callers may reorder it freely.
func (r *municipalityRepository) List(ctx context.Context) ([]domain.MunicipalityRecord, error) {
	out := make([]domain.MunicipalityRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *municipalityRepository) GetByName(ctx context.Context, municipio string) (*domain.MunicipalityRecord, error) {
	var best *domain.MunicipalityRecord
	for i := range r.records {
		rec := &r.records[i]
		if !strings.EqualFold(rec.Municipio, municipio) {
			continue
		}
		if best == nil || rec.Populacao > best.Populacao {
			best = rec
		}
	}
	if best == nil {
		return nil, errors.NotFound("municipality %q not found", municipio)
	}

	found := *best
	return &found, nil
}

func (r *municipalityRepository) Meta(ctx context.Context) (*domain.DatasetMeta, error) {
	meta := domain.DatasetMeta{
		Regions:           append([]string(nil), r.meta.Regions...),
		MunicipalityTypes: append([]string(nil), r.meta.MunicipalityTypes...),
		Municipalities:    r.meta.Municipalities,
	}
	return &meta, nil
}

func buildMeta(records []domain.MunicipalityRecord) domain.DatasetMeta {
	regions := make(map[string]struct{})
	types := make(map[string]struct{})
	for _, rec := range records {
		if rec.Regiao != "" {
			regions[rec.Regiao] = struct{}{}
		}
		if rec.Tipo != "" {
			types[rec.Tipo] = struct{}{}
		}
	}

	return domain.DatasetMeta{
		Regions:           sortedKeys(regions),
		MunicipalityTypes: sortedKeys(types),
		Municipalities:    len(records),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
