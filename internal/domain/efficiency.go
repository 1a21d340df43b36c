package domain

// EfficiencyCategory buckets the efficiency score.
type EfficiencyCategory string

const (
	EfficiencyHigh    EfficiencyCategory = "high"
	EfficiencyMedium  EfficiencyCategory = "medium"
	EfficiencyLow     EfficiencyCategory = "low"
	EfficiencyVeryLow EfficiencyCategory = "very_low"
)

// EfficiencyRecord carries the computed resource/coverage metrics of one municipality.
type EfficiencyRecord struct {
	Municipio          string             `json:"municipio"`
	UF                 string             `json:"uf"`
	Regiao             string             `json:"regiao"`
	Tipo               string             `json:"tipo"`
	Populacao          int                `json:"populacao"`
	UBSCount           int                `json:"ubs_count"`
	UBSPer10k          float64            `json:"ubs_per_10k"`
	AvgCoverage        float64            `json:"avg_coverage"`
	Efficiency         float64            `json:"efficiency"`
	EfficiencyCategory EfficiencyCategory `json:"efficiency_category"`
}

// SimilarityScore pairs a benchmarking candidate with its similarity to the target.
type SimilarityScore struct {
	EfficiencyRecord
	Similarity float64 `json:"similarity"`
}

// Benchmark is the target municipality together with its peers.
type Benchmark struct {
	Target  EfficiencyRecord  `json:"target"`
	Similar []SimilarityScore `json:"similar"`
}
