package parcel

import (
	"context"

	"parcels/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Create(ctx context.Context, p domain.NewParcel, userID string) (domain.Parcel, error) {
	args := m.Called(ctx, p, userID)
	parcel, _ := args.Get(0).(domain.Parcel)
	return parcel, args.Error(1)
}

func (m *MockParcelRepository) ListFiltered(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.ParcelView, int, error) {
	args := m.Called(ctx, userID, filter)
	items, _ := args.Get(0).([]domain.ParcelView)
	return items, args.Int(1), args.Error(2)
}

func (m *MockParcelRepository) GetByID(ctx context.Context, id int64, userID string) (domain.ParcelView, error) {
	args := m.Called(ctx, id, userID)
	v, _ := args.Get(0).(domain.ParcelView)
	return v, args.Error(1)
}

func (m *MockParcelRepository) AssignCompany(ctx context.Context, parcelID, companyID int64, userID string) (domain.Parcel, error) {
	args := m.Called(ctx, parcelID, companyID, userID)
	p, _ := args.Get(0).(domain.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) SetDeliveryCost(ctx context.Context, parcelID int64, cost float64) error {
	args := m.Called(ctx, parcelID, cost)
	return args.Error(0)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) ListParcelTypes(ctx context.Context) ([]domain.ParcelType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]domain.ParcelType)
	return types, args.Error(1)
}

func (m *MockReferenceRepository) ListTransportCompanies(ctx context.Context) ([]domain.TransportCompany, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]domain.TransportCompany)
	return companies, args.Error(1)
}

type MockRateCache struct{ mock.Mock }

func (m *MockRateCache) Get(ctx context.Context) (float64, bool, error) {
	args := m.Called(ctx)
	rate, _ := args.Get(0).(float64)
	return rate, args.Bool(1), args.Error(2)
}

func (m *MockRateCache) Set(ctx context.Context, rate float64) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

type MockRateFetcher struct{ mock.Mock }

func (m *MockRateFetcher) FetchLiveRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	rate, _ := args.Get(0).(float64)
	return rate, args.Error(1)
}
