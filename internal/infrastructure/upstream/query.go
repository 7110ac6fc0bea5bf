package upstream

// Filter is one predicate of a remote list query.
type Filter struct {
	Key       string `json:"key"`
	Operator  string `json:"operator"`
	FieldType string `json:"field_type"`
	Value     any    `json:"value"`
}

// Sort is one ordering clause of a remote list query.
type Sort struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

// Filter operators and field types understood by the remote API.
const (
	OpEqual   = "EQUAL"
	OpLike    = "LIKE"
	OpIn      = "IN"
	OpBetween = "BETWEEN"

	FieldString  = "STRING"
	FieldNumber  = "NUMBER"
	FieldBoolean = "BOOLEAN"
	FieldDate    = "DATE"

	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ListQuery is the body of a remote search call. Page is zero-based on the
// wire; the gateway surface is one-based, so construct through NewListQuery.
type ListQuery struct {
	Filters []Filter `json:"filters"`
	Sorts   []Sort   `json:"sorts"`
	Page    int      `json:"page"`
	Size    int      `json:"size"`
}

// NewListQuery builds a query from a one-based page number.
func NewListQuery(page, size int) ListQuery {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return ListQuery{
		Filters: []Filter{},
		Sorts:   []Sort{},
		Page:    page - 1,
		Size:    size,
	}
}

// WithFilter appends a predicate and returns the query for chaining.
func (q ListQuery) WithFilter(key, operator, fieldType string, value any) ListQuery {
	q.Filters = append(q.Filters, Filter{Key: key, Operator: operator, FieldType: fieldType, Value: value})
	return q
}

// WithSort appends an ordering clause and returns the query for chaining.
func (q ListQuery) WithSort(key, direction string) ListQuery {
	q.Sorts = append(q.Sorts, Sort{Key: key, Direction: direction})
	return q
}

// PagedResult is a passthrough of the remote API's pagination envelope.
type PagedResult[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	Last          bool  `json:"last"`
}
