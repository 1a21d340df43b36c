package analytics

// Params groups the parameters of every Engine component.
type Params struct {
	Cluster    ClusterParams
	Efficiency EfficiencyParams
	Similarity SimilarityParams
	Temporal   TemporalParams
	Simulation SimulationParams
	Query      QueryParams
}

func DefaultParams() Params {
	return Params{
		Cluster:    DefaultClusterParams(),
		Efficiency: DefaultEfficiencyParams(),
		Similarity: DefaultSimilarityParams(),
		Temporal:   DefaultTemporalParams(),
		Simulation: DefaultSimulationParams(),
		Query:      DefaultQueryParams(),
	}
}

// Engine bundles the analysis components. It holds no state besides its
// parameters and is safe for concurrent use.
type Engine struct {
	Clusterer  *GeoClusterer
	Scorer     *EfficiencyScorer
	Matcher    *SimilarityMatcher
	Temporal   *TemporalAnalyzer
	Statistics *StatisticsAnalyzer
	Query      *QueryBuilder
	Simulator  *Simulator
}

func NewEngine(p Params) *Engine {
	return &Engine{
		Clusterer:  NewGeoClusterer(p.Cluster),
		Scorer:     NewEfficiencyScorer(p.Efficiency),
		Matcher:    NewSimilarityMatcher(p.Similarity),
		Temporal:   NewTemporalAnalyzer(p.Temporal),
		Statistics: NewStatisticsAnalyzer(p.Efficiency.PopulationFactor),
		Query:      NewQueryBuilder(p.Query),
		Simulator:  NewSimulator(p.Simulation),
	}
}
