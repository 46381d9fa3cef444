package parcel

import (
	"context"
	"parcels/internal/adapters"
	"parcels/internal/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListQuery is a page request; zero Page and PageSize take the defaults.
type ListQuery struct {
	Page            int
	PageSize        int
	ParcelTypeID    *int64
	HasDeliveryCost *bool
}

type Page struct {
	Items []domain.ParcelView
	Total int
}

// Service serves the owner-scoped read and assignment operations.
type Service struct {
	store adapters.ParcelRepository
	refs  adapters.ReferenceRepository
}

func (s *Service) List(ctx context.Context, userID string, q ListQuery) (Page, error) {
	filter, err := q.filter()
	if err != nil {
		return Page{}, err
	}
	items, total, err := s.store.ListFiltered(ctx, userID, filter)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id int64, userID string) (domain.ParcelView, error) {
	if id <= 0 {
		return domain.ParcelView{}, domain.ErrParcelNotFound
	}
	return s.store.GetByID(ctx, id, userID)
}

func (s *Service) AssignCompany(ctx context.Context, parcelID, companyID int64, userID string) (domain.Parcel, error) {
	if companyID <= 0 {
		return domain.Parcel{}, &domain.ValidationError{Field: "company_id", Reason: "must be greater than 0"}
	}
	if parcelID <= 0 {
		return domain.Parcel{}, domain.ErrParcelNotFound
	}
	return s.store.AssignCompany(ctx, parcelID, companyID, userID)
}

func (s *Service) ParcelTypes(ctx context.Context) ([]domain.ParcelType, error) {
	return s.refs.ListParcelTypes(ctx)
}

func (s *Service) TransportCompanies(ctx context.Context) ([]domain.TransportCompany, error) {
	return s.refs.ListTransportCompanies(ctx)
}

func (q ListQuery) filter() (domain.ListFilter, error) {
	page, size := q.Page, q.PageSize
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return domain.ListFilter{}, &domain.ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if size < 1 || size > MaxPageSize {
		return domain.ListFilter{}, &domain.ValidationError{Field: "page_size", Reason: "must be between 1 and 100"}
	}
	if q.ParcelTypeID != nil && *q.ParcelTypeID <= 0 {
		return domain.ListFilter{}, &domain.ValidationError{Field: "parcel_type_id", Reason: "must be greater than 0"}
	}
	return domain.ListFilter{
		Skip:            (page - 1) * size,
		Limit:           size,
		ParcelTypeID:    q.ParcelTypeID,
		HasDeliveryCost: q.HasDeliveryCost,
	}, nil
}

func NewService(store adapters.ParcelRepository, refs adapters.ReferenceRepository) *Service {
	return &Service{store: store, refs: refs}
}
