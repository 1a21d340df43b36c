package domain

// FieldKind decides which operators a query field accepts.
type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldCategorical FieldKind = "categorical"
	FieldNumeric     FieldKind = "numeric"
)

// QueryFilter is a single predicate. Filters with an empty field, operator or
// value are ignored.
type QueryFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query is a declarative filter/sort/project request over the dataset.
type Query struct {
	Filters       []QueryFilter `json:"filters"`
	SortField     string        `json:"sort_field,omitempty"`
	SortOrder     SortOrder     `json:"sort_order,omitempty"`
	Limit         int           `json:"limit,omitempty"`
	DisplayFields []string      `json:"display_fields"`
}

// QueryResult holds the projected rows of a query.
type QueryResult struct {
	TotalResults     int              `json:"total_results"`
	DisplayedResults int              `json:"displayed_results"`
	Fields           []string         `json:"fields"`
	Rows             []map[string]any `json:"rows"`
}
