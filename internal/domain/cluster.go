package domain

// GeoPoint is the projection of a MunicipalityRecord used for clustering one vaccine.
type GeoPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Coverage  float64 `json:"coverage"`
	Municipio string  `json:"municipio"`
	Regiao    string  `json:"regiao"`
	Tipo      string  `json:"tipo"`
	UBSCount  int     `json:"ubs_count"`
	Populacao int     `json:"populacao"`
}

// Cluster is a group of low-coverage points that are density-reachable from each other.
// IDs are 1-based ranks after sorting by size.
type Cluster struct {
	ID      int            `json:"id"`
	Points  []GeoPoint     `json:"points"`
	Summary ClusterSummary `json:"summary"`
}

// Size returns the number of member points.
func (c Cluster) Size() int {
	return len(c.Points)
}

// ClusterSummary holds the descriptive values a map popup needs for a cluster.
type ClusterSummary struct {
	Size           int         `json:"size"`
	AvgCoverage    float64     `json:"avg_coverage"`
	DominantRegion string      `json:"dominant_region"`
	DominantType   string      `json:"dominant_type"`
	Centroid       Point       `json:"centroid"`
	Bounds         BoundingBox `json:"bounds"`
}

// ClusterResult is the output of a clustering run.
type ClusterResult struct {
	Vaccine                Vaccine    `json:"vaccine,omitempty"`
	Clusters               []Cluster  `json:"clusters"`
	Noise                  []GeoPoint `json:"noise"`
	TotalLowCoveragePoints int        `json:"total_low_coverage_points"`

	// DroppedClusters counts clusters formed but cut by the max-clusters cap.
	DroppedClusters int `json:"dropped_clusters"`
}
