package controllers

import (
	"errors"
	"net/http"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/M0rdr3d/lisk/pkg/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type recordsHttpRoutes struct {
	svc    services.RecordsService
	logger *logrus.Entry
}

func NewRecordsHttpRoutes(logger *logrus.Entry, svc services.RecordsService) *recordsHttpRoutes {
	return &recordsHttpRoutes{
		svc:    svc,
		logger: logger,
	}
}

func (r *recordsHttpRoutes) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrEntityNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"err": err.Error()})
	case errors.Is(err, errs.ErrValidateBadRequest),
		errors.Is(err, errs.ErrNonSupportedFilter),
		errors.Is(err, errs.ErrMissingFilterValue):
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}

type entityUriParams struct {
	Entity string `uri:"entity" binding:"required"`
}

func (r *recordsHttpRoutes) GetEntities(ctx *gin.Context) {
	names, err := r.svc.GetEntities(ctx)
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources.GetEntitiesResponse{Entities: names})
}

func (r *recordsHttpRoutes) GetFilters(ctx *gin.Context) {
	var params entityUriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	filters, err := r.svc.GetFilters(ctx, services.GetFiltersInput{Entity: params.Entity})
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources.GetFiltersResponse{
		Entity:  params.Entity,
		Filters: filters,
	})
}

func (r *recordsHttpRoutes) GetRecords(ctx *gin.Context) {
	var params entityUriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ent, err := r.svc.GetEntity(ctx, services.GetEntityInput{Entity: params.Entity})
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	queryParams, err := FilterQuery(ctx.Request, ent)
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	records, err := r.svc.GetRecords(ctx, services.GetRecordsInput{
		Entity:          params.Entity,
		QueryParameters: *queryParams,
	})
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources.GetRecordsResponse{
		List:     records,
		PageSize: queryParams.PageSize,
		Offset:   queryParams.Offset,
	})
}

func (r *recordsHttpRoutes) GetStats(ctx *gin.Context) {
	var params entityUriParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ent, err := r.svc.GetEntity(ctx, services.GetEntityInput{Entity: params.Entity})
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	queryParams, err := FilterQuery(ctx.Request, ent)
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	count, err := r.svc.CountRecords(ctx, services.CountRecordsInput{
		Entity:  params.Entity,
		Filters: queryParams.Filters,
	})
	if err != nil {
		r.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resources.GetStatsResponse{
		Entity: params.Entity,
		Count:  count,
	})
}
