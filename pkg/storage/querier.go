package storage

import (
	"context"
	"fmt"

	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/helpers"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultPageSize = 25

type ListOptions struct {
	Filters  []resources.FilterGroup
	Sort     resources.SortOptions
	PageSize int
	Offset   int
}

type RecordsRepo interface {
	Count(ctx context.Context, groups []resources.FilterGroup) (int, error)
	SelectAll(ctx context.Context, opts ListOptions) ([]map[string]any, error)
}

// RecordsQuerier runs the filters of one entity against its table.
type RecordsQuerier struct {
	db     *gorm.DB
	entity *entity.Entity
	logger *logrus.Entry
}

func NewRecordsQuerier(logger *logrus.Entry, db *gorm.DB, ent *entity.Entity) *RecordsQuerier {
	return &RecordsQuerier{
		db:     db,
		entity: ent,
		logger: logger.WithField("entity", ent.Name),
	}
}

func (q *RecordsQuerier) applyFilters(ctx context.Context, tx *gorm.DB, groups []resources.FilterGroup) (*gorm.DB, error) {
	where, err := q.entity.ParseFilters(groups...)
	if err != nil {
		return nil, err
	}

	if where != nil {
		helpers.ConfigureLogger(ctx, q.logger).Debugf("applying filter clause: %s", where.SQL)
		tx = tx.Where(where.SQL, where.Args...)
	}

	return tx, nil
}

func (q *RecordsQuerier) Count(ctx context.Context, groups []resources.FilterGroup) (int, error) {
	var count int64
	tx := q.db.WithContext(ctx).Table(q.entity.Table)

	tx, err := q.applyFilters(ctx, tx, groups)
	if err != nil {
		return -1, err
	}

	if err := tx.Count(&count).Error; err != nil {
		return -1, err
	}

	return int(count), nil
}

func (q *RecordsQuerier) SelectAll(ctx context.Context, opts ListOptions) ([]map[string]any, error) {
	tx := q.db.WithContext(ctx).Table(q.entity.Table).Select(q.entity.Columns())

	tx, err := q.applyFilters(ctx, tx, opts.Filters)
	if err != nil {
		return nil, err
	}

	if opts.Sort.SortField != "" {
		col, ok := q.entity.Column(opts.Sort.SortField)
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort by unknown field '%s'", errs.ErrValidateBadRequest, opts.Sort.SortField)
		}

		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   opts.Sort.SortMode == resources.SortModeDesc,
		})
	}

	limit := DefaultPageSize
	if opts.PageSize > 0 {
		limit = opts.PageSize
	}
	tx = tx.Limit(limit)

	if opts.Offset > 0 {
		tx = tx.Offset(opts.Offset)
	}

	rows := []map[string]any{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
