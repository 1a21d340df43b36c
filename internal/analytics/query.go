package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/coverage-analytics/internal/domain"
	apperrors "github.com/coverage-analytics/internal/pkg/errors"
)

// Operators accepted by the query builder, per field kind.
const (
	OpEq  = "="
	OpGt  = ">"
	OpLt  = "<"
	OpGte = ">="
	OpLte = "<="
	OpNeq = "!="

	OpContains   = "contains"
	OpStartsWith = "starts_with"
	OpEndsWith   = "ends_with"
	OpEquals     = "equals"
	OpNotEquals  = "not_equals"
)

type queryField struct {
	kind       domain.FieldKind
	filterable bool
	text       func(r domain.MunicipalityRecord) string
	number     func(r domain.MunicipalityRecord) (float64, bool)
}

// QueryFields lists the queryable fields in display order.
var QueryFields = []string{
	"municipio", "uf", "regiao", "tipo", "populacao", "ubs_count",
	"bcg", "dtp", "penta", "polio", "rotavirus",
	"triplice_viral_1", "triplice_viral_2", "varicela",
	"latitude", "longitude",
}

var queryFields = buildQueryFields()

func buildQueryFields() map[string]queryField {
	fields := map[string]queryField{
		"municipio": {kind: domain.FieldText, filterable: true, text: func(r domain.MunicipalityRecord) string { return r.Municipio }},
		"uf":        {kind: domain.FieldCategorical, filterable: true, text: func(r domain.MunicipalityRecord) string { return r.UF }},
		"regiao":    {kind: domain.FieldCategorical, filterable: true, text: func(r domain.MunicipalityRecord) string { return r.Regiao }},
		"tipo":      {kind: domain.FieldCategorical, filterable: true, text: func(r domain.MunicipalityRecord) string { return r.Tipo }},
		"populacao": {kind: domain.FieldNumeric, filterable: true, number: func(r domain.MunicipalityRecord) (float64, bool) {
			return float64(r.Populacao), true
		}},
		"ubs_count": {kind: domain.FieldNumeric, filterable: true, number: func(r domain.MunicipalityRecord) (float64, bool) {
			return float64(r.UBSCount), true
		}},
		"latitude": {kind: domain.FieldNumeric, number: func(r domain.MunicipalityRecord) (float64, bool) {
			if r.Latitude == nil {
				return 0, false
			}
			return *r.Latitude, true
		}},
		"longitude": {kind: domain.FieldNumeric, number: func(r domain.MunicipalityRecord) (float64, bool) {
			if r.Longitude == nil {
				return 0, false
			}
			return *r.Longitude, true
		}},
	}

	for _, v := range domain.AllVaccines {
		vaccine := v
		fields[string(v)] = queryField{
			kind:       domain.FieldNumeric,
			filterable: true,
			number: func(r domain.MunicipalityRecord) (float64, bool) {
				return r.Coverage(vaccine)
			},
		}
	}
	return fields
}

// FieldKindOf returns the kind of a queryable field.
func FieldKindOf(field string) (domain.FieldKind, bool) {
	f, ok := queryFields[field]
	return f.kind, ok
}

// QueryBuilder runs declarative filter/sort/project queries over the dataset.
type QueryBuilder struct {
	params QueryParams
}

func NewQueryBuilder(params QueryParams) *QueryBuilder {
	return &QueryBuilder{params: params}
}

// Execute applies the filters in order, sorts, limits and projects the rows.
// Incomplete filters and filters on unknown or non-filterable fields are
// skipped. Unknown display fields are left out of the projection.
func (b *QueryBuilder) Execute(records []domain.MunicipalityRecord, q domain.Query) (*domain.QueryResult, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("dataset is empty")
	}
	if len(q.Filters) == 0 {
		return nil, apperrors.InvalidInput("at least one filter is required")
	}
	if len(q.DisplayFields) == 0 {
		return nil, apperrors.InvalidInput("at least one display field is required")
	}
	if len(q.Filters) > b.params.MaxFilters {
		return nil, apperrors.InvalidInput("too many filters: %d (max %d)", len(q.Filters), b.params.MaxFilters)
	}
	if len(q.DisplayFields) > b.params.MaxDisplayFields {
		return nil, apperrors.InvalidInput("too many display fields: %d (max %d)", len(q.DisplayFields), b.params.MaxDisplayFields)
	}

	rows := make([]domain.MunicipalityRecord, len(records))
	copy(rows, records)

	for _, f := range q.Filters {
		if f.Field == "" || f.Operator == "" || f.Value == "" {
			continue
		}
		field, ok := queryFields[f.Field]
		if !ok || !field.filterable {
			continue
		}
		kept := rows[:0]
		for _, r := range rows {
			if field.match(r, f.Operator, f.Value) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	if field, ok := queryFields[q.SortField]; ok {
		desc := q.SortOrder == domain.SortDesc
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return field.less(rows[j], rows[i])
			}
			return field.less(rows[i], rows[j])
		})
	}

	total := len(rows)
	limit := q.Limit
	if limit <= 0 {
		limit = b.params.DefaultLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	display := make([]string, 0, len(q.DisplayFields))
	for _, name := range q.DisplayFields {
		if _, ok := queryFields[name]; ok {
			display = append(display, name)
		}
	}

	result := &domain.QueryResult{
		TotalResults:     total,
		DisplayedResults: len(rows),
		Fields:           display,
		Rows:             make([]map[string]any, 0, len(rows)),
	}
	for _, r := range rows {
		row := make(map[string]any, len(display))
		for _, name := range display {
			row[name] = queryFields[name].value(r)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// UniqueFieldValues lists the distinct non-empty values of a field, sorted
// numerically for numeric fields and lexically otherwise. Zero numbers count
// as empty.
func UniqueFieldValues(records []domain.MunicipalityRecord, name string) ([]any, error) {
	field, ok := queryFields[name]
	if !ok {
		return nil, apperrors.InvalidInput("unknown field %q", name)
	}

	if field.kind == domain.FieldNumeric {
		seen := make(map[float64]struct{})
		nums := make([]float64, 0)
		for _, r := range records {
			v, ok := field.number(r)
			if !ok || v == 0 || math.IsNaN(v) {
				continue
			}
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				nums = append(nums, v)
			}
		}
		sort.Float64s(nums)
		out := make([]any, len(nums))
		for i, v := range nums {
			out[i] = v
		}
		return out, nil
	}

	seen := make(map[string]struct{})
	strs := make([]string, 0)
	for _, r := range records {
		v := field.text(r)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			strs = append(strs, v)
		}
	}
	sort.Strings(strs)
	out := make([]any, len(strs))
	for i, v := range strs {
		out[i] = v
	}
	return out, nil
}

// match evaluates one filter. Unknown operators match everything. A numeric
// filter value that does not parse compares as NaN, so only != matches.
func (f queryField) match(r domain.MunicipalityRecord, op, value string) bool {
	switch f.kind {
	case domain.FieldNumeric:
		want, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			want = math.NaN()
		}
		got, ok := f.number(r)
		if !ok {
			got = math.NaN()
		}
		switch op {
		case OpEq:
			return got == want
		case OpGt:
			return got > want
		case OpLt:
			return got < want
		case OpGte:
			return got >= want
		case OpLte:
			return got <= want
		case OpNeq:
			return got != want
		}
	case domain.FieldText:
		got := strings.ToLower(f.text(r))
		want := strings.ToLower(value)
		switch op {
		case OpContains:
			return strings.Contains(got, want)
		case OpStartsWith:
			return strings.HasPrefix(got, want)
		case OpEndsWith:
			return strings.HasSuffix(got, want)
		case OpEquals:
			return got == want
		case OpNotEquals:
			return got != want
		}
	case domain.FieldCategorical:
		switch op {
		case OpEquals:
			return f.text(r) == value
		case OpNotEquals:
			return f.text(r) != value
		}
	}
	return true
}

// less orders numerics with missing values as 0 and text case-insensitively.
func (f queryField) less(a, b domain.MunicipalityRecord) bool {
	if f.kind == domain.FieldNumeric {
		av, _ := f.number(a)
		bv, _ := f.number(b)
		return av < bv
	}
	return strings.ToLower(f.text(a)) < strings.ToLower(f.text(b))
}

func (f queryField) value(r domain.MunicipalityRecord) any {
	if f.kind != domain.FieldNumeric {
		return f.text(r)
	}
	v, ok := f.number(r)
	if !ok {
		return nil
	}
	return v
}
