package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/geo"
)

func gp(name string, lat, lng, coverage float64, regiao, tipo string) domain.GeoPoint {
	return domain.GeoPoint{
		Lat:       lat,
		Lng:       lng,
		Coverage:  coverage,
		Municipio: name,
		Regiao:    regiao,
		Tipo:      tipo,
		UBSCount:  10,
		Populacao: 100000,
	}
}

// saoPauloGroup is five points within ~30 km of each other.
func saoPauloGroup() []domain.GeoPoint {
	return []domain.GeoPoint{
		gp("SP-1", -23.55, -46.63, 70, "Sudeste", "Metropolitano"),
		gp("SP-2", -23.60, -46.60, 72, "Sudeste", "Urbano"),
		gp("SP-3", -23.50, -46.70, 74, "Sudeste", "Metropolitano"),
		gp("SP-4", -23.65, -46.55, 76, "Sudeste", "Urbano"),
		gp("SP-5", -23.45, -46.65, 78, "Sudeste", "Metropolitano"),
	}
}

// recifeGroup is four points within ~20 km of each other.
func recifeGroup() []domain.GeoPoint {
	return []domain.GeoPoint{
		gp("PE-1", -8.05, -34.90, 60, "Nordeste", "Metropolitano"),
		gp("PE-2", -8.10, -34.95, 62, "Nordeste", "Metropolitano"),
		gp("PE-3", -8.00, -34.88, 64, "Nordeste", "Urbano"),
		gp("PE-4", -8.12, -34.85, 66, "Nordeste", "Urbano"),
	}
}

func mixedPoints() []domain.GeoPoint {
	points := append([]domain.GeoPoint{}, recifeGroup()...)
	points = append(points, gp("Manaus", -3.10, -60.02, 50, "Norte", "Metropolitano"))
	points = append(points, saoPauloGroup()...)
	return points
}

func TestGeoClusterer_Cluster_SingleDenseGroup(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	result, err := c.Cluster(saoPauloGroup())
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, 5, result.Clusters[0].Size())
	assert.Equal(t, 1, result.Clusters[0].ID)
	assert.Empty(t, result.Noise)
	assert.Equal(t, 5, result.TotalLowCoveragePoints)
}

func TestGeoClusterer_Cluster_MembersAreUnique(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	result, err := c.Cluster(mixedPoints())
	require.NoError(t, err)

	seen := make(map[string]bool)
	total := 0
	for _, cl := range result.Clusters {
		for _, p := range cl.Points {
			assert.False(t, seen[p.Municipio], "%s assigned twice", p.Municipio)
			seen[p.Municipio] = true
			total++
		}
	}
	for _, p := range result.Noise {
		assert.False(t, seen[p.Municipio], "%s is both member and noise", p.Municipio)
		total++
	}
	assert.Equal(t, len(mixedPoints()), total)
}

func TestGeoClusterer_Cluster_SortedBySizeWithNoise(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	result, err := c.Cluster(mixedPoints())
	require.NoError(t, err)

	require.Len(t, result.Clusters, 2)
	assert.Equal(t, 5, result.Clusters[0].Size())
	assert.Equal(t, 4, result.Clusters[1].Size())
	assert.Equal(t, 1, result.Clusters[0].ID)
	assert.Equal(t, 2, result.Clusters[1].ID)
	assert.Equal(t, "Sudeste", result.Clusters[0].Summary.DominantRegion)

	require.Len(t, result.Noise, 1)
	assert.Equal(t, "Manaus", result.Noise[0].Municipio)
	assert.Zero(t, result.DroppedClusters)
}

func TestGeoClusterer_Cluster_MaxClustersCap(t *testing.T) {
	params := DefaultClusterParams()
	params.MaxClusters = 1
	c := NewGeoClusterer(params)

	result, err := c.Cluster(mixedPoints())
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, 5, result.Clusters[0].Size())
	assert.Equal(t, 1, result.DroppedClusters)
	// members of the dropped cluster are not reported as noise
	require.Len(t, result.Noise, 1)
	assert.Equal(t, "Manaus", result.Noise[0].Municipio)
}

func TestGeoClusterer_Cluster_FewerThanMinPoints(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())
	points := saoPauloGroup()[:2]

	result, err := c.Cluster(points)
	require.NoError(t, err)

	assert.Empty(t, result.Clusters)
	assert.Equal(t, points, result.Noise)
}

func TestGeoClusterer_Cluster_Empty(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	result, err := c.Cluster(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Clusters)
	assert.Empty(t, result.Noise)
}

func TestGeoClusterer_Cluster_Deterministic(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	first, err := c.Cluster(mixedPoints())
	require.NoError(t, err)
	second, err := c.Cluster(mixedPoints())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGeoClusterer_Cluster_DensityInvariant(t *testing.T) {
	params := DefaultClusterParams()
	c := NewGeoClusterer(params)
	points := mixedPoints()

	result, err := c.Cluster(points)
	require.NoError(t, err)

	countNeighbors := func(p domain.GeoPoint, among []domain.GeoPoint) int {
		n := 0
		for _, q := range among {
			if q == p {
				continue
			}
			if geo.HaversineDistance(p.Lat, p.Lng, q.Lat, q.Lng) <= params.EpsilonKm {
				n++
			}
		}
		return n
	}

	clustered := make(map[string]bool)
	for _, cl := range result.Clusters {
		for _, p := range cl.Points {
			clustered[p.Municipio] = true
		}
	}

	// a dense noise point is only allowed when every neighbour belongs to a cluster
	for _, p := range result.Noise {
		if countNeighbors(p, points) < params.MinPoints {
			continue
		}
		for _, q := range points {
			if q != p && geo.HaversineDistance(p.Lat, p.Lng, q.Lat, q.Lng) <= params.EpsilonKm {
				assert.True(t, clustered[q.Municipio], "dense noise point %s has free neighbour %s", p.Municipio, q.Municipio)
			}
		}
	}

	for _, cl := range result.Clusters {
		for _, p := range cl.Points {
			if countNeighbors(p, points) >= params.MinPoints {
				continue
			}
			reachable := false
			for _, core := range cl.Points {
				if core != p && countNeighbors(core, points) >= params.MinPoints &&
					geo.HaversineDistance(p.Lat, p.Lng, core.Lat, core.Lng) <= params.EpsilonKm {
					reachable = true
					break
				}
			}
			assert.True(t, reachable, "border point %s is not reachable from a core point", p.Municipio)
		}
	}
}

func TestGeoClusterer_Cluster_BorderPointJoins(t *testing.T) {
	params := DefaultClusterParams()
	params.EpsilonKm = 16
	c := NewGeoClusterer(params)

	// the border point is listed first, so it is visited (as noise) before
	// any core point reaches it
	points := []domain.GeoPoint{
		gp("border", -23.55, -46.45, 80, "Sudeste", "Rural"),
		gp("core-1", -23.55, -46.60, 70, "Sudeste", "Urbano"),
		gp("core-2", -23.56, -46.62, 70, "Sudeste", "Urbano"),
		gp("core-3", -23.54, -46.63, 70, "Sudeste", "Urbano"),
		gp("core-4", -23.57, -46.64, 70, "Sudeste", "Urbano"),
	}

	result, err := c.Cluster(points)
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, 5, result.Clusters[0].Size())
	assert.Empty(t, result.Noise)
}

// kmPoint places a point dx km east and dy km north of (0, 0). Near the
// equator one degree spans the same distance on both axes.
func kmPoint(name string, dx, dy float64) domain.GeoPoint {
	kmPerDegree := geo.HaversineDistance(0, 0, 1, 0)
	return gp(name, dy/kmPerDegree, dx/kmPerDegree, 60, "Norte", "Rural")
}

// armCores are four mutually close points along (ux, uy), the first one
// start km from the origin and the rest more than 3 km beyond it.
func armCores(prefix string, ux, uy, start float64) []domain.GeoPoint {
	at := func(name string, along, across float64) domain.GeoPoint {
		return kmPoint(prefix+"-"+name, ux*along-uy*across, uy*along+ux*across)
	}
	return []domain.GeoPoint{
		at("core-1", start, 0),
		at("core-2", start+3.5, 0),
		at("core-3", start+4, 0),
		at("core-4", start+3.5, 1),
	}
}

// denseArm adds a border point 7 km from the origin that only core-1 reaches.
func denseArm(prefix string, ux, uy float64) []domain.GeoPoint {
	return append(armCores(prefix, ux, uy, 16), kmPoint(prefix+"-border", ux*7, uy*7))
}

func TestGeoClusterer_Cluster_UndersizedGroupBecomesNoise(t *testing.T) {
	params := DefaultClusterParams()
	params.EpsilonKm = 10
	params.MinPoints = 3
	c := NewGeoClusterer(params)

	// the hub sees exactly three neighbours, all borders claimed by the arms
	var points []domain.GeoPoint
	points = append(points, denseArm("north", 0, 1)...)
	points = append(points, denseArm("southeast", 0.866, -0.5)...)
	points = append(points, denseArm("southwest", -0.866, -0.5)...)
	points = append(points, kmPoint("hub", 0, 0))

	result, err := c.Cluster(points)
	require.NoError(t, err)

	require.Len(t, result.Clusters, 3)
	for _, cl := range result.Clusters {
		assert.Equal(t, 5, cl.Size())
		assert.GreaterOrEqual(t, cl.Size(), params.MinPoints)
	}
	require.Len(t, result.Noise, 1)
	assert.Equal(t, "hub", result.Noise[0].Municipio)
	assert.Zero(t, result.DroppedClusters)
}

func TestGeoClusterer_Cluster_SharedBorderGoesToFirstCluster(t *testing.T) {
	params := DefaultClusterParams()
	params.EpsilonKm = 10
	params.MinPoints = 3
	c := NewGeoClusterer(params)

	// the shared point is 7 km from one core of each arm and is not itself core
	north := armCores("north", 0, 1, 7)
	south := armCores("south", 0, -1, 7)
	shared := kmPoint("shared", 0, 0)

	tests := []struct {
		name     string
		points   []domain.GeoPoint
		firstArm string
	}{
		{
			name:     "north listed first",
			points:   append(append(append([]domain.GeoPoint{}, north...), south...), shared),
			firstArm: "north",
		},
		{
			name:     "south listed first",
			points:   append(append(append([]domain.GeoPoint{}, south...), north...), shared),
			firstArm: "south",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := c.Cluster(tt.points)
			require.NoError(t, err)
			require.Len(t, result.Clusters, 2)
			assert.Empty(t, result.Noise)

			// the cluster that claimed the shared point is larger, so it ranks first
			first, second := result.Clusters[0], result.Clusters[1]
			assert.Equal(t, 5, first.Size())
			assert.Equal(t, 4, second.Size())
			assert.Equal(t, tt.firstArm+"-core-1", first.Points[0].Municipio)
			assert.Contains(t, first.Points, shared)
			assert.NotContains(t, second.Points, shared)
		})
	}
}

func TestGeoClusterer_Cluster_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *ClusterParams)
	}{
		{name: "zero epsilon", mutate: func(p *ClusterParams) { p.EpsilonKm = 0 }},
		{name: "zero min points", mutate: func(p *ClusterParams) { p.MinPoints = 0 }},
		{name: "zero max clusters", mutate: func(p *ClusterParams) { p.MaxClusters = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultClusterParams()
			tt.mutate(&params)

			_, err := NewGeoClusterer(params).Cluster(saoPauloGroup())
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
		})
	}
}

func TestGeoClusterer_Summary(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	result, err := c.Cluster(saoPauloGroup())
	require.NoError(t, err)
	s := result.Clusters[0].Summary

	assert.Equal(t, 5, s.Size)
	assert.InDelta(t, 74.0, s.AvgCoverage, 1e-9)
	assert.Equal(t, "Sudeste", s.DominantRegion)
	assert.Equal(t, "Metropolitano", s.DominantType)
	assert.InDelta(t, -23.55, s.Centroid.Lat, 1e-9)
	assert.InDelta(t, -46.626, s.Centroid.Lon, 1e-9)
	assert.InDelta(t, -23.65, s.Bounds.MinLat, 1e-9)
	assert.InDelta(t, -23.45, s.Bounds.MaxLat, 1e-9)
	assert.InDelta(t, -46.70, s.Bounds.MinLon, 1e-9)
	assert.InDelta(t, -46.55, s.Bounds.MaxLon, 1e-9)
}

func TestMostFrequent_TieGoesToFirstSeen(t *testing.T) {
	assert.Equal(t, "b", mostFrequent([]string{"b", "a", "a", "b"}))
	assert.Equal(t, "a", mostFrequent([]string{"a", "b", "b", "a", "c"}))
	assert.Equal(t, "", mostFrequent(nil))
}

func record(name string, lat, lng *float64, bcg float64) domain.MunicipalityRecord {
	return domain.MunicipalityRecord{
		Municipio: name,
		UF:        "SP",
		Regiao:    "Sudeste",
		Tipo:      "Urbano",
		Populacao: 50000,
		UBSCount:  5,
		Latitude:  lat,
		Longitude: lng,
		BCG:       bcg,
	}
}

func f64(v float64) *float64 {
	return &v
}

func TestBuildGeoPoints(t *testing.T) {
	records := []domain.MunicipalityRecord{
		record("low", f64(-23.5), f64(-46.6), 70),
		record("at-threshold", f64(-23.5), f64(-46.6), 85),
		record("high", f64(-23.5), f64(-46.6), 95),
		record("no-coords", nil, nil, 40),
		record("half-coords", f64(-23.5), nil, 40),
	}

	points, err := BuildGeoPoints(records, domain.VaccineBCG, 85)
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.Equal(t, "low", points[0].Municipio)
	assert.Equal(t, 70.0, points[0].Coverage)
	assert.Equal(t, -46.6, points[0].Lng)

	_, err = BuildGeoPoints(records, domain.Vaccine("covid"), 85)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestGeoClusterer_IdentifyLowCoverageClusters(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())

	var records []domain.MunicipalityRecord
	for _, p := range saoPauloGroup() {
		records = append(records, record(p.Municipio, f64(p.Lat), f64(p.Lng), p.Coverage))
	}
	records = append(records, record("covered", f64(-23.52), f64(-46.61), 99))

	result, err := c.IdentifyLowCoverageClusters(records, domain.VaccineBCG)
	require.NoError(t, err)

	assert.Equal(t, domain.VaccineBCG, result.Vaccine)
	assert.Equal(t, 5, result.TotalLowCoveragePoints)
	require.Len(t, result.Clusters, 1)
	assert.Equal(t, 5, result.Clusters[0].Size())

	_, err = c.IdentifyLowCoverageClusters(nil, domain.VaccineBCG)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestClustersGeoJSON(t *testing.T) {
	c := NewGeoClusterer(DefaultClusterParams())
	result, err := c.Cluster(mixedPoints())
	require.NoError(t, err)

	fc := ClustersGeoJSON(result)
	require.Len(t, fc.Features, len(mixedPoints()))

	last := fc.Features[len(fc.Features)-1]
	assert.Equal(t, -1, last.Properties["cluster_id"])
	assert.Equal(t, "Manaus", last.Properties["municipio"])
	assert.Equal(t, -60.02, last.Point().Lon())
	assert.Equal(t, -3.10, last.Point().Lat())

	first := fc.Features[0]
	assert.Equal(t, 1, first.Properties["cluster_id"])

	assert.Empty(t, ClustersGeoJSON(nil).Features)
}
