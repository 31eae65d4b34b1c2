package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/resources"
)

const DefaultPageSize = 25

// FilterFields resolves the filter vocabulary of an entity.
type FilterFields interface {
	FilterType(key string) (resources.FilterType, bool)
	Column(name string) (string, bool)
}

// FilterQuery reads sorting, paging and filter values from the request query.
// The n-th occurrence of a filter key is placed in the n-th filter group.
func FilterQuery(r *http.Request, fields FilterFields) (*resources.QueryParameters, error) {
	queryParams := resources.QueryParameters{
		Filters:  []resources.FilterGroup{},
		PageSize: DefaultPageSize,
	}

	if len(r.URL.RawQuery) == 0 {
		return &queryParams, nil
	}

	values := r.URL.Query()
	for k, v := range values {
		switch k {
		case "sort_by":
			value := v[len(v)-1] //only get last
			sortField := strings.Trim(value, " ")
			if _, exists := fields.Column(sortField); exists {
				queryParams.Sort.SortField = sortField
			}

		case "sort_mode":
			value := v[len(v)-1] //only get last
			queryParams.Sort.SortMode = resources.ParseSortMode(value)

		case "page_size":
			value := v[len(v)-1] //only get last
			pageS, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid page_size '%s'", errs.ErrValidateBadRequest, value)
			}
			queryParams.PageSize = pageS

		case "offset":
			value := v[len(v)-1] //only get last
			offset, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid offset '%s'", errs.ErrValidateBadRequest, value)
			}
			queryParams.Offset = offset

		default:
			filterType, _ := fields.FilterType(k)
			for i, raw := range v {
				value, err := coerceFilterValue(k, filterType, raw)
				if err != nil {
					return nil, err
				}

				for len(queryParams.Filters) <= i {
					queryParams.Filters = append(queryParams.Filters, resources.FilterGroup{})
				}
				queryParams.Filters[i][k] = value
			}
		}
	}

	return &queryParams, nil
}

func coerceFilterValue(key string, filterType resources.FilterType, raw string) (any, error) {
	if strings.HasSuffix(key, resources.InSuffix) {
		list := []any{}
		for _, item := range strings.Split(raw, ",") {
			value, err := coerceScalar(key, filterType, strings.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	}

	if strings.HasSuffix(key, resources.LikeSuffix) {
		return raw, nil
	}

	return coerceScalar(key, filterType, raw)
}

func coerceScalar(key string, filterType resources.FilterType, raw string) (any, error) {
	switch filterType {
	case resources.NumberFilterType:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: filter '%s' expects a number, got '%s'", errs.ErrValidateBadRequest, key, raw)
		}
		return n, nil
	case resources.BooleanFilterType:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: filter '%s' expects a boolean, got '%s'", errs.ErrValidateBadRequest, key, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}
