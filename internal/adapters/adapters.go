package adapters

import (
	"context"
	"parcels/internal/domain"
)

type RateClient interface {
	GetUSDRate(ctx context.Context) (float64, error)
}

// RateCache stores the single process-wide USD rate.
// Get returns ok == false on a miss; backend failures wrap domain.ErrCacheUnavailable.
type RateCache interface {
	Get(ctx context.Context) (float64, bool, error)
	Set(ctx context.Context, rate float64) error
}

type ParcelRepository interface {
	Create(ctx context.Context, p domain.NewParcel, userID string) (domain.Parcel, error)
	ListFiltered(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.ParcelView, int, error)
	GetByID(ctx context.Context, id int64, userID string) (domain.ParcelView, error)
	AssignCompany(ctx context.Context, parcelID, companyID int64, userID string) (domain.Parcel, error)
	SetDeliveryCost(ctx context.Context, parcelID int64, cost float64) error
}

type ReferenceRepository interface {
	ListParcelTypes(ctx context.Context) ([]domain.ParcelType, error)
	ListTransportCompanies(ctx context.Context) ([]domain.TransportCompany, error)
}
