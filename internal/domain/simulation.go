package domain

// Interventions toggles the policy levers applied by the simulator.
type Interventions struct {
	AwarenessCampaign    bool `json:"awareness_campaign"`
	IncreaseCapacity     bool `json:"increase_capacity"`
	ImproveAccessibility bool `json:"improve_accessibility"`
}

// Any reports whether at least one intervention is enabled.
func (i Interventions) Any() bool {
	return i.AwarenessCampaign || i.IncreaseCapacity || i.ImproveAccessibility
}

// SimulationStep is the projected coverage at one month.
type SimulationStep struct {
	Month      int     `json:"month"`
	Coverage   float64 `json:"coverage"`
	Population int     `json:"population"`
	Vaccinated int     `json:"vaccinated"`
}

// SimulationResult compares the intervention scenario with the baseline.
type SimulationResult struct {
	Municipio       string           `json:"municipio"`
	Vaccine         Vaccine          `json:"vaccine"`
	InitialCoverage float64          `json:"initial_coverage"`
	Interventions   Interventions    `json:"interventions"`
	Scenario        []SimulationStep `json:"scenario"`
	Baseline        []SimulationStep `json:"baseline"`
	FinalCoverage   float64          `json:"final_coverage"`
	BaselineFinal   float64          `json:"baseline_final"`
	Improvement     float64          `json:"improvement"`
}
