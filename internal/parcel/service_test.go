package parcel

import (
	"context"
	"errors"
	"testing"

	"parcels/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// --- List ---

func TestService_List_MapsPageToWindow(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))

	typeID := ptr(int64(2))
	hasCost := ptr(true)
	items := []domain.ParcelView{{Parcel: domain.Parcel{ID: 11}}, {Parcel: domain.Parcel{ID: 12}}}
	store.On("ListFiltered", mock.Anything, "user-1", domain.ListFilter{
		Skip: 10, Limit: 10, ParcelTypeID: typeID, HasDeliveryCost: hasCost,
	}).Return(items, 12, nil).Once()

	page, err := svc.List(context.Background(), "user-1", ListQuery{
		Page: 2, PageSize: 10, ParcelTypeID: typeID, HasDeliveryCost: hasCost,
	})

	require.NoError(t, err)
	require.Equal(t, 12, page.Total)
	require.Len(t, page.Items, 2)
	store.AssertExpectations(t)
}

func TestService_List_Defaults(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))

	store.On("ListFiltered", mock.Anything, "user-1", domain.ListFilter{Skip: 0, Limit: DefaultPageSize}).
		Return([]domain.ParcelView{}, 0, nil).Once()

	page, err := svc.List(context.Background(), "user-1", ListQuery{})

	require.NoError(t, err)
	require.Empty(t, page.Items)
	store.AssertExpectations(t)
}

func TestService_List_ValidationErrors(t *testing.T) {
	cases := []struct {
		name      string
		query     ListQuery
		wantField string
	}{
		{name: "negative page", query: ListQuery{Page: -1}, wantField: "page"},
		{name: "page size too large", query: ListQuery{PageSize: 101}, wantField: "page_size"},
		{name: "negative page size", query: ListQuery{PageSize: -5}, wantField: "page_size"},
		{name: "bad type filter", query: ListQuery{ParcelTypeID: ptr(int64(0))}, wantField: "parcel_type_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockParcelRepository)
			svc := NewService(store, new(MockReferenceRepository))

			_, err := svc.List(context.Background(), "user-1", tc.query)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.wantField, ve.Field)
			store.AssertNotCalled(t, "ListFiltered", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_List_StoreError(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))
	wantErr := errors.New("db query failed")

	store.On("ListFiltered", mock.Anything, "user-1", mock.Anything).Return(nil, 0, wantErr).Once()

	_, err := svc.List(context.Background(), "user-1", ListQuery{})

	require.Equal(t, wantErr, err)
	store.AssertExpectations(t)
}

// --- Get ---

func TestService_Get(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))
	view := domain.ParcelView{Parcel: domain.Parcel{ID: 3, UserID: "user-1"}, ParcelTypeName: "Clothes"}

	store.On("GetByID", mock.Anything, int64(3), "user-1").Return(view, nil).Once()
	store.On("GetByID", mock.Anything, int64(3), "user-2").Return(domain.ParcelView{}, domain.ErrParcelNotFound).Once()

	got, err := svc.Get(context.Background(), 3, "user-1")
	require.NoError(t, err)
	require.Equal(t, view, got)

	_, err = svc.Get(context.Background(), 3, "user-2")
	require.ErrorIs(t, err, domain.ErrParcelNotFound)

	_, err = svc.Get(context.Background(), 0, "user-1")
	require.ErrorIs(t, err, domain.ErrParcelNotFound)
	store.AssertExpectations(t)
}

// --- AssignCompany ---

func TestService_AssignCompany(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))
	company := int64(2)
	assigned := domain.Parcel{ID: 3, TransportCompanyID: &company}

	store.On("AssignCompany", mock.Anything, int64(3), int64(2), "user-1").Return(assigned, nil).Once()

	got, err := svc.AssignCompany(context.Background(), 3, 2, "user-1")

	require.NoError(t, err)
	require.Equal(t, assigned, got)
	store.AssertExpectations(t)
}

func TestService_AssignCompany_PassesStoreErrors(t *testing.T) {
	for _, wantErr := range []error{domain.ErrAlreadyAssigned, domain.ErrParcelNotFound, domain.ErrConcurrency} {
		store := new(MockParcelRepository)
		svc := NewService(store, new(MockReferenceRepository))
		store.On("AssignCompany", mock.Anything, int64(3), int64(1), "user-1").Return(domain.Parcel{}, wantErr).Once()

		_, err := svc.AssignCompany(context.Background(), 3, 1, "user-1")

		require.ErrorIs(t, err, wantErr)
		store.AssertExpectations(t)
	}
}

func TestService_AssignCompany_InvalidIDs(t *testing.T) {
	store := new(MockParcelRepository)
	svc := NewService(store, new(MockReferenceRepository))

	_, err := svc.AssignCompany(context.Background(), 3, 0, "user-1")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AssignCompany(context.Background(), -1, 1, "user-1")
	require.ErrorIs(t, err, domain.ErrParcelNotFound)

	store.AssertNotCalled(t, "AssignCompany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- reference data ---

func TestService_ReferenceData(t *testing.T) {
	refs := new(MockReferenceRepository)
	svc := NewService(new(MockParcelRepository), refs)

	types := []domain.ParcelType{{ID: 1, Name: "Clothes"}}
	companies := []domain.TransportCompany{{ID: 1, Name: "DHL"}}
	refs.On("ListParcelTypes", mock.Anything).Return(types, nil).Once()
	refs.On("ListTransportCompanies", mock.Anything).Return(companies, nil).Once()

	gotTypes, err := svc.ParcelTypes(context.Background())
	require.NoError(t, err)
	require.Equal(t, types, gotTypes)

	gotCompanies, err := svc.TransportCompanies(context.Background())
	require.NoError(t, err)
	require.Equal(t, companies, gotCompanies)
	refs.AssertExpectations(t)
}
