package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/M0rdr3d/lisk/pkg/config"
	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/M0rdr3d/lisk/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func setupRecordsService(t *testing.T) *RecordsServiceBackend {
	db, err := storage.CreateSQLiteDBConnection(testLogger(), config.SQLiteConfig{InMemory: true}, t.Name())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Exec(`CREATE TABLE blocks (id TEXT, height INTEGER, generator_public_key BLOB)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO blocks (id, height) VALUES ('b1', 1), ('b2', 2), ('b3', 3)`).Error)

	ent := entity.NewEntity("blocks", "blocks", nil)
	require.NoError(t, ent.AddField("id", entity.FieldOptions{Filter: resources.TextFilterType}))
	require.NoError(t, ent.AddField("height", entity.FieldOptions{Filter: resources.NumberFilterType}))
	require.NoError(t, ent.AddField("generatorPublicKey", entity.FieldOptions{FieldName: "generator_public_key"}))

	registry := entity.NewRegistry()
	require.NoError(t, registry.Register(ent))

	svc, err := NewRecordsService(RecordsServiceBuilder{
		Logger:   testLogger(),
		Registry: registry,
		DB:       db,
	})
	require.NoError(t, err)

	return svc
}

func TestNewRecordsServiceRequiresStorage(t *testing.T) {
	registry := entity.NewRegistry()
	require.NoError(t, registry.Register(entity.NewEntity("blocks", "blocks", nil)))

	_, err := NewRecordsService(RecordsServiceBuilder{Logger: testLogger(), Registry: registry})
	assert.Error(t, err)

	_, err = NewRecordsService(RecordsServiceBuilder{Logger: testLogger()})
	assert.Error(t, err)
}

func TestGetEntities(t *testing.T) {
	svc := setupRecordsService(t)

	names, err := svc.GetEntities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"blocks"}, names)
}

func TestGetEntity(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	ent, err := svc.GetEntity(ctx, GetEntityInput{Entity: "blocks"})
	require.NoError(t, err)
	assert.Equal(t, "blocks", ent.Table)

	filterType, ok := ent.FilterType("height_lt")
	assert.True(t, ok)
	assert.Equal(t, resources.NumberFilterType, filterType)

	_, err = svc.GetEntity(ctx, GetEntityInput{})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest)

	_, err = svc.GetEntity(ctx, GetEntityInput{Entity: "rounds"})
	assert.ErrorIs(t, err, errs.ErrEntityNotFound)
}

func TestGetFilters(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	filters, err := svc.GetFilters(ctx, GetFiltersInput{Entity: "blocks"})
	require.NoError(t, err)
	assert.Equal(t, `"height" >= ${height}`, filters["height_gte"])
	assert.Equal(t, `"id" IN (${id_in:csv})`, filters["id_in"])
	assert.Len(t, filters, 13)

	_, err = svc.GetFilters(ctx, GetFiltersInput{})
	assert.ErrorIs(t, err, errs.ErrValidateBadRequest)

	_, err = svc.GetFilters(ctx, GetFiltersInput{Entity: "transactions"})
	assert.ErrorIs(t, err, errs.ErrEntityNotFound)
}

func TestGetRecords(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	records, err := svc.GetRecords(ctx, GetRecordsInput{
		Entity: "blocks",
		QueryParameters: resources.QueryParameters{
			Filters: []resources.FilterGroup{{"height_gte": 2}},
			Sort:    resources.SortOptions{SortField: "height", SortMode: resources.SortModeDesc},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.EqualValues(t, "b3", records[0]["id"])
	assert.EqualValues(t, "b2", records[1]["id"])
}

func TestGetRecordsErrors(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	testcases := []struct {
		name   string
		input  GetRecordsInput
		target error
	}{
		{name: "missing entity", input: GetRecordsInput{}, target: errs.ErrValidateBadRequest},
		{
			name:   "negative page size",
			input:  GetRecordsInput{Entity: "blocks", QueryParameters: resources.QueryParameters{PageSize: -1}},
			target: errs.ErrValidateBadRequest,
		},
		{name: "unknown entity", input: GetRecordsInput{Entity: "rounds"}, target: errs.ErrEntityNotFound},
		{
			name: "unsupported filter",
			input: GetRecordsInput{
				Entity:          "blocks",
				QueryParameters: resources.QueryParameters{Filters: []resources.FilterGroup{{"height_like": "1%"}}},
			},
			target: errs.ErrNonSupportedFilter,
		},
		{
			name: "unfilterable field",
			input: GetRecordsInput{
				Entity:          "blocks",
				QueryParameters: resources.QueryParameters{Filters: []resources.FilterGroup{{"generatorPublicKey": "aa"}}},
			},
			target: errs.ErrNonSupportedFilter,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GetRecords(ctx, tc.input)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestCountRecords(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	count, err := svc.CountRecords(ctx, CountRecordsInput{Entity: "blocks"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = svc.CountRecords(ctx, CountRecordsInput{
		Entity:  "blocks",
		Filters: []resources.FilterGroup{{"id": "b1"}, {"height_gt": 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.CountRecords(ctx, CountRecordsInput{Entity: "blocks", Filters: []resources.FilterGroup{{"id_gt": "b"}}})
	assert.ErrorIs(t, err, errs.ErrNonSupportedFilter)
}

func TestCountRecordsEveryFilterKey(t *testing.T) {
	svc := setupRecordsService(t)
	ctx := context.Background()

	testcases := []struct {
		group resources.FilterGroup
		want  int
	}{
		{group: resources.FilterGroup{"height": 2}, want: 1},
		{group: resources.FilterGroup{"height_eql": 2}, want: 1},
		{group: resources.FilterGroup{"height_ne": 2}, want: 2},
		{group: resources.FilterGroup{"height_gt": 1}, want: 2},
		{group: resources.FilterGroup{"height_gte": 1}, want: 3},
		{group: resources.FilterGroup{"height_lt": 3}, want: 2},
		{group: resources.FilterGroup{"height_lte": 3}, want: 3},
		{group: resources.FilterGroup{"height_in": []int{1, 3}}, want: 2},
		{group: resources.FilterGroup{"id": "b1"}, want: 1},
		{group: resources.FilterGroup{"id_eql": "b1"}, want: 1},
		{group: resources.FilterGroup{"id_ne": "b1"}, want: 2},
		{group: resources.FilterGroup{"id_in": "b1,b2"}, want: 2},
		{group: resources.FilterGroup{"id_like": "b%"}, want: 3},
	}

	for _, tc := range testcases {
		for key := range tc.group {
			t.Run(key, func(t *testing.T) {
				count, err := svc.CountRecords(ctx, CountRecordsInput{Entity: "blocks", Filters: []resources.FilterGroup{tc.group}})
				require.NoError(t, err)
				assert.Equal(t, tc.want, count)
			})
		}
	}
}
