package resources

type SortMode string

const (
	SortModeAsc  SortMode = "asc"
	SortModeDesc SortMode = "desc"
)

func ParseSortMode(t string) SortMode {
	switch t {
	case "asc":
		return SortModeAsc
	case "desc":
		return SortModeDesc
	}
	return SortModeAsc
}

type SortOptions struct {
	SortMode  SortMode
	SortField string
}

// FilterGroup holds the values bound to the filter keys of one conjunction.
type FilterGroup map[string]any

type QueryParameters struct {
	Sort     SortOptions
	PageSize int `validate:"gte=0"`
	Offset   int `validate:"gte=0"`
	Filters  []FilterGroup
}
