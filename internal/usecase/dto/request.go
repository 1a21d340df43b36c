package dto

// VaccineRequest selects the coverage indicator an analysis runs on.
type VaccineRequest struct {
	Vaccine string `query:"vaccine" json:"vaccine" validate:"required,vaccine"`
}

// MatrixRequest selects the typology matrix. Vaccine also accepts "all".
type MatrixRequest struct {
	Vaccine string `query:"vaccine" json:"vaccine,omitempty"`
	View    string `query:"view" json:"view,omitempty" validate:"omitempty,oneof=typology region"`
}

// EfficiencyRequest filters the scored listing. Limit 0 means the default.
type EfficiencyRequest struct {
	Region string `query:"region" json:"region,omitempty"`
	Type   string `query:"type" json:"type,omitempty"`
	Limit  int    `query:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=10000"`
}

// SeriesPoint is one observation supplied inline by the caller. Date is
// YYYY-MM-DD or RFC3339.
type SeriesPoint struct {
	Date  string  `json:"date" validate:"required"`
	Value float64 `json:"value"`
}

// TemporalRequest carries either an inline series or a municipality and
// vaccine whose stored history is loaded. An inline series wins.
type TemporalRequest struct {
	Series    []SeriesPoint `json:"series,omitempty" validate:"omitempty,dive"`
	Municipio string        `json:"municipio,omitempty" validate:"omitempty,min=2"`
	Vaccine   string        `json:"vaccine,omitempty" validate:"omitempty,vaccine"`
}

// ForecastJobRequest enqueues an asynchronous forecast.
type ForecastJobRequest struct {
	Municipio string `json:"municipio" validate:"required,min=2"`
	Vaccine   string `json:"vaccine" validate:"required,vaccine"`
}

type QueryFilterRequest struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// QueryRequest is a custom query over the dataset. Incomplete filters are
// ignored by the query engine, so they carry no validation tags.
type QueryRequest struct {
	Filters       []QueryFilterRequest `json:"filters"`
	SortField     string               `json:"sort_field,omitempty"`
	SortOrder     string               `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
	Limit         int                  `json:"limit,omitempty" validate:"omitempty,min=0"`
	DisplayFields []string             `json:"display_fields"`
}

// SimulationRequest runs the intervention simulator for one municipality.
type SimulationRequest struct {
	Municipio            string `json:"municipio" validate:"required,min=2"`
	Vaccine              string `json:"vaccine" validate:"required,vaccine"`
	AwarenessCampaign    bool   `json:"awareness_campaign"`
	IncreaseCapacity     bool   `json:"increase_capacity"`
	ImproveAccessibility bool   `json:"improve_accessibility"`
}
