package analytics

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
	"github.com/coverage-analytics/internal/pkg/geo"
)

const noiseClusterID = -1

// GeoClusterer groups low-coverage municipalities with DBSCAN over haversine distance.
type GeoClusterer struct {
	params ClusterParams
}

func NewGeoClusterer(params ClusterParams) *GeoClusterer {
	return &GeoClusterer{params: params}
}

// BuildGeoPoints projects records onto one vaccine, keeping only records with
// coordinates and coverage strictly below threshold.
func BuildGeoPoints(records []domain.MunicipalityRecord, vaccine domain.Vaccine, threshold float64) ([]domain.GeoPoint, error) {
	if !vaccine.Valid() {
		return nil, apperrors.InvalidInput("unknown vaccine %q", vaccine)
	}

	points := make([]domain.GeoPoint, 0, len(records))
	for _, r := range records {
		if !r.HasCoordinates() {
			continue
		}
		coverage, _ := r.Coverage(vaccine)
		if coverage >= threshold {
			continue
		}
		points = append(points, domain.GeoPoint{
			Lat:       *r.Latitude,
			Lng:       *r.Longitude,
			Coverage:  coverage,
			Municipio: r.Municipio,
			Regiao:    r.Regiao,
			Tipo:      r.Tipo,
			UBSCount:  r.UBSCount,
			Populacao: r.Populacao,
		})
	}
	return points, nil
}

// IdentifyLowCoverageClusters filters the dataset to low-coverage points of a
// vaccine and clusters them.
func (c *GeoClusterer) IdentifyLowCoverageClusters(records []domain.MunicipalityRecord, vaccine domain.Vaccine) (*domain.ClusterResult, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("dataset is empty")
	}

	points, err := BuildGeoPoints(records, vaccine, c.params.CoverageThreshold)
	if err != nil {
		return nil, err
	}

	result, err := c.Cluster(points)
	if err != nil {
		return nil, err
	}
	result.Vaccine = vaccine
	return result, nil
}

// Cluster runs DBSCAN over points.
//
// Membership is "first cluster wins": a point joins at most one cluster, once.
// A core point whose neighbours were all claimed by earlier clusters would
// form a group smaller than MinPoints; such a group is released to noise.
// Clusters are ranked by size (stable on formation order), capped at
// MaxClusters and numbered from 1. Clusters cut by the cap are counted in
// DroppedClusters; their points are not reported as noise.
func (c *GeoClusterer) Cluster(points []domain.GeoPoint) (*domain.ClusterResult, error) {
	if err := c.params.validate(); err != nil {
		return nil, err
	}

	n := len(points)
	visited := make([]bool, n)
	assigned := make([]int, n)
	for i := range assigned {
		assigned[i] = noiseClusterID
	}

	var groups [][]int
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := c.neighbors(points, i)
		if len(neighbors) < c.params.MinPoints {
			continue
		}

		id := len(groups)
		members := []int{i}
		assigned[i] = id

		queue := neighbors
		for k := 0; k < len(queue); k++ {
			q := queue[k]
			if !visited[q] {
				visited[q] = true
				qn := c.neighbors(points, q)
				if len(qn) >= c.params.MinPoints {
					for _, r := range qn {
						if !visited[r] {
							queue = append(queue, r)
						}
					}
				}
			}
			if assigned[q] == noiseClusterID {
				assigned[q] = id
				members = append(members, q)
			}
		}
		if len(members) < c.params.MinPoints {
			for _, m := range members {
				assigned[m] = noiseClusterID
			}
			continue
		}
		groups = append(groups, members)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a]) > len(groups[b])
	})

	dropped := 0
	if len(groups) > c.params.MaxClusters {
		dropped = len(groups) - c.params.MaxClusters
		groups = groups[:c.params.MaxClusters]
	}

	result := &domain.ClusterResult{
		Clusters:               make([]domain.Cluster, 0, len(groups)),
		Noise:                  make([]domain.GeoPoint, 0),
		TotalLowCoveragePoints: n,
		DroppedClusters:        dropped,
	}

	for rank, members := range groups {
		cl := domain.Cluster{
			ID:     rank + 1,
			Points: make([]domain.GeoPoint, len(members)),
		}
		for j, idx := range members {
			cl.Points[j] = points[idx]
		}
		cl.Summary = summarize(cl.Points)
		result.Clusters = append(result.Clusters, cl)
	}

	for i, p := range points {
		if assigned[i] == noiseClusterID {
			result.Noise = append(result.Noise, p)
		}
	}

	return result, nil
}

// neighbors returns indexes of the other points within epsilon of points[i].
func (c *GeoClusterer) neighbors(points []domain.GeoPoint, i int) []int {
	var out []int
	for j := range points {
		if j == i {
			continue
		}
		d := geo.HaversineDistance(points[i].Lat, points[i].Lng, points[j].Lat, points[j].Lng)
		if d <= c.params.EpsilonKm {
			out = append(out, j)
		}
	}
	return out
}

func summarize(points []domain.GeoPoint) domain.ClusterSummary {
	summary := domain.ClusterSummary{Size: len(points)}
	if len(points) == 0 {
		return summary
	}

	mp := make(orb.MultiPoint, len(points))
	regions := make([]string, len(points))
	types := make([]string, len(points))
	var total float64
	for i, p := range points {
		mp[i] = geo.ToOrbPoint(p.Lat, p.Lng)
		regions[i] = p.Regiao
		types[i] = p.Tipo
		total += p.Coverage
	}

	centroid, _ := planar.CentroidArea(mp)
	bound := mp.Bound()

	summary.AvgCoverage = total / float64(len(points))
	summary.DominantRegion = mostFrequent(regions)
	summary.DominantType = mostFrequent(types)
	summary.Centroid = domain.Point{Lat: centroid.Lat(), Lon: centroid.Lon()}
	summary.Bounds = domain.BoundingBox{
		MinLat: bound.Bottom(),
		MinLon: bound.Left(),
		MaxLat: bound.Top(),
		MaxLon: bound.Right(),
	}
	return summary
}

// mostFrequent returns the most common value; ties go to the value seen first.
func mostFrequent(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// ClustersGeoJSON renders clusters and noise as a FeatureCollection of points.
// Noise features carry cluster_id -1.
func ClustersGeoJSON(result *domain.ClusterResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if result == nil {
		return fc
	}

	for _, cl := range result.Clusters {
		for _, p := range cl.Points {
			fc.Append(pointFeature(p, cl.ID))
		}
	}
	for _, p := range result.Noise {
		fc.Append(pointFeature(p, noiseClusterID))
	}
	return fc
}

func pointFeature(p domain.GeoPoint, clusterID int) *geojson.Feature {
	f := geojson.NewFeature(geo.ToOrbPoint(p.Lat, p.Lng))
	f.Properties["cluster_id"] = clusterID
	f.Properties["municipio"] = p.Municipio
	f.Properties["regiao"] = p.Regiao
	f.Properties["tipo"] = p.Tipo
	f.Properties["coverage"] = p.Coverage
	f.Properties["ubs_count"] = p.UBSCount
	f.Properties["populacao"] = p.Populacao
	return f
}
