package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coverage-analytics/internal/domain"
	"github.com/coverage-analytics/internal/pkg/errors"
)

func loadTestDataset(t *testing.T) *municipalityRepository {
	t.Helper()
	repo, err := NewMunicipalityRepository("testdata/municipalities.json", zap.NewNop())
	require.NoError(t, err)
	return repo.(*municipalityRepository)
}

func TestNewMunicipalityRepository(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewMunicipalityRepository("testdata/absent.json", zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"municipio":`), 0o600))

		_, err := NewMunicipalityRepository(path, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestMunicipalityRepository_List(t *testing.T) {
	repo := loadTestDataset(t)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Campinas", records[0].Municipio)
	assert.True(t, records[0].HasCoordinates())
	assert.False(t, records[3].HasCoordinates())

	records[0].Municipio = "changed"
	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Campinas", again[0].Municipio)
}

func TestMunicipalityRepository_GetByName(t *testing.T) {
	repo := loadTestDataset(t)
	ctx := context.Background()

	t.Run("case insensitive", func(t *testing.T) {
		rec, err := repo.GetByName(ctx, "CAMPINAS")
		require.NoError(t, err)
		cov, ok := rec.Coverage(domain.VaccineBCG)
		assert.True(t, ok)
		assert.InDelta(t, 92.1, cov, 1e-9)
	})

	t.Run("homonyms resolve to the most populous", func(t *testing.T) {
		rec, err := repo.GetByName(ctx, "bom jesus")
		require.NoError(t, err)
		assert.Equal(t, "PI", rec.UF)
	})

	t.Run("not found", func(t *testing.T) {
		rec, err := repo.GetByName(ctx, "Atlantis")
		assert.Nil(t, rec)
		assert.True(t, errors.HasCode(err, errors.CodeNotFound))
	})
}

func TestMunicipalityRepository_Meta(t *testing.T) {
	repo := loadTestDataset(t)

	meta, err := repo.Meta(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Nordeste", "Norte", "Sudeste", "Sul"}, meta.Regions)
	assert.Equal(t, []string{"Metropolitano", "Rural", "Urbano"}, meta.MunicipalityTypes)
	assert.Equal(t, 4, meta.Municipalities)
}

func TestBuildMeta_SkipsBlankValues(t *testing.T) {
	meta := buildMeta([]domain.MunicipalityRecord{
		{Municipio: "A", Regiao: "", Tipo: "Rural"},
		{Municipio: "B", Regiao: "Sul", Tipo: ""},
	})

	assert.Equal(t, []string{"Sul"}, meta.Regions)
	assert.Equal(t, []string{"Rural"}, meta.MunicipalityTypes)
	assert.Equal(t, 2, meta.Municipalities)
}
