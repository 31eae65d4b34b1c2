package services

import (
	"context"
	"fmt"

	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/helpers"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/M0rdr3d/lisk/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var recordsValidate = validator.New()

type RecordsServiceBackend struct {
	registry *entity.Registry
	repos    map[string]storage.RecordsRepo
	logger   *logrus.Entry
}

type RecordsServiceBuilder struct {
	Logger   *logrus.Entry
	Registry *entity.Registry
	DB       *gorm.DB
	// Repos overrides the per entity repositories built from DB.
	Repos map[string]storage.RecordsRepo
}

func NewRecordsService(builder RecordsServiceBuilder) (*RecordsServiceBackend, error) {
	if builder.Registry == nil {
		return nil, fmt.Errorf("entity registry is required")
	}

	repos := map[string]storage.RecordsRepo{}
	for _, name := range builder.Registry.Names() {
		if repo, ok := builder.Repos[name]; ok {
			repos[name] = repo
			continue
		}

		if builder.DB == nil {
			return nil, fmt.Errorf("no storage available for entity '%s'", name)
		}

		ent, err := builder.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		repos[name] = storage.NewRecordsQuerier(builder.Logger, builder.DB, ent)
	}

	return &RecordsServiceBackend{
		registry: builder.Registry,
		repos:    repos,
		logger:   builder.Logger,
	}, nil
}

func (svc *RecordsServiceBackend) GetEntities(ctx context.Context) ([]string, error) {
	return svc.registry.Names(), nil
}

func (svc *RecordsServiceBackend) GetEntity(ctx context.Context, input GetEntityInput) (*entity.Entity, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := recordsValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("GetEntityInput struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	return svc.registry.Get(input.Entity)
}

func (svc *RecordsServiceBackend) GetFilters(ctx context.Context, input GetFiltersInput) (resources.Filters, error) {
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := recordsValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("GetFiltersInput struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	ent, err := svc.registry.Get(input.Entity)
	if err != nil {
		lFunc.Errorf("could not get entity '%s': %s", input.Entity, err)
		return nil, err
	}

	return ent.Filters(), nil
}

func (svc *RecordsServiceBackend) GetRecords(ctx context.Context, input GetRecordsInput) ([]map[string]any, error) {
	ctx = helpers.ContextWithEntity(ctx, input.Entity)
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := recordsValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("GetRecordsInput struct validation error: %s", err)
		return nil, errs.ErrValidateBadRequest
	}

	repo, err := svc.repoFor(input.Entity, input.QueryParameters.Filters)
	if err != nil {
		lFunc.Errorf("could not query entity '%s': %s", input.Entity, err)
		return nil, err
	}

	lFunc.Debugf("reading '%s' records with %d filter groups", input.Entity, len(input.QueryParameters.Filters))
	records, err := repo.SelectAll(ctx, storage.ListOptions{
		Filters:  input.QueryParameters.Filters,
		Sort:     input.QueryParameters.Sort,
		PageSize: input.QueryParameters.PageSize,
		Offset:   input.QueryParameters.Offset,
	})
	if err != nil {
		lFunc.Errorf("could not read '%s' records: %s", input.Entity, err)
		return nil, err
	}

	return records, nil
}

func (svc *RecordsServiceBackend) CountRecords(ctx context.Context, input CountRecordsInput) (int, error) {
	ctx = helpers.ContextWithEntity(ctx, input.Entity)
	lFunc := helpers.ConfigureLogger(ctx, svc.logger)

	err := recordsValidate.Struct(input)
	if err != nil {
		lFunc.Errorf("CountRecordsInput struct validation error: %s", err)
		return -1, errs.ErrValidateBadRequest
	}

	repo, err := svc.repoFor(input.Entity, input.Filters)
	if err != nil {
		lFunc.Errorf("could not query entity '%s': %s", input.Entity, err)
		return -1, err
	}

	count, err := repo.Count(ctx, input.Filters)
	if err != nil {
		lFunc.Errorf("could not count '%s' records: %s", input.Entity, err)
		return -1, err
	}

	return count, nil
}

func (svc *RecordsServiceBackend) repoFor(name string, groups []resources.FilterGroup) (storage.RecordsRepo, error) {
	ent, err := svc.registry.Get(name)
	if err != nil {
		return nil, err
	}

	if err := ent.ValidateFilters(groups...); err != nil {
		return nil, err
	}

	repo, ok := svc.repos[name]
	if !ok {
		return nil, errs.ErrEntityNotFound
	}

	return repo, nil
}
