package services

import (
	"context"

	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/resources"
)

type RecordsService interface {
	GetEntities(ctx context.Context) ([]string, error)
	GetEntity(ctx context.Context, input GetEntityInput) (*entity.Entity, error)
	GetFilters(ctx context.Context, input GetFiltersInput) (resources.Filters, error)
	GetRecords(ctx context.Context, input GetRecordsInput) ([]map[string]any, error)
	CountRecords(ctx context.Context, input CountRecordsInput) (int, error)
}

type GetEntityInput struct {
	Entity string `validate:"required"`
}

type GetFiltersInput struct {
	Entity string `validate:"required"`
}

type GetRecordsInput struct {
	Entity          string `validate:"required"`
	QueryParameters resources.QueryParameters
}

type CountRecordsInput struct {
	Entity  string `validate:"required"`
	Filters []resources.FilterGroup
}
