package mock

import (
	"context"

	"github.com/M0rdr3d/lisk/pkg/entity"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/M0rdr3d/lisk/pkg/services"
	"github.com/stretchr/testify/mock"
)

type MockRecordsService struct {
	mock.Mock
}

func (m *MockRecordsService) GetEntities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordsService) GetEntity(ctx context.Context, input services.GetEntityInput) (*entity.Entity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *MockRecordsService) GetFilters(ctx context.Context, input services.GetFiltersInput) (resources.Filters, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(resources.Filters), args.Error(1)
}

func (m *MockRecordsService) GetRecords(ctx context.Context, input services.GetRecordsInput) ([]map[string]any, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

func (m *MockRecordsService) CountRecords(ctx context.Context, input services.CountRecordsInput) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}
