package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parcels/internal/config"
	"parcels/internal/domain"
	"parcels/internal/jobs"
	"parcels/internal/parcel"
	parcelhandler "parcels/internal/parcel/handler"
	ratehandler "parcels/internal/rate/handler"
	"parcels/internal/session"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (stubService) List(context.Context, string, parcel.ListQuery) (parcel.Page, error) {
	return parcel.Page{}, nil
}

func (stubService) Get(context.Context, int64, string) (domain.ParcelView, error) {
	return domain.ParcelView{}, domain.ErrParcelNotFound
}

func (stubService) AssignCompany(context.Context, int64, int64, string) (domain.Parcel, error) {
	return domain.Parcel{}, domain.ErrParcelNotFound
}

func (stubService) ParcelTypes(context.Context) ([]domain.ParcelType, error) {
	return []domain.ParcelType{{ID: 1, Name: "Clothes"}}, nil
}

func (stubService) TransportCompanies(context.Context) ([]domain.TransportCompany, error) {
	return []domain.TransportCompany{{ID: 1, Name: "DHL"}}, nil
}

type stubQueue struct{}

func (stubQueue) Enqueue(context.Context, jobs.Type, any) (uuid.UUID, error) {
	return uuid.New(), nil
}

type stubRates struct{}

func (stubRates) Get(context.Context) (float64, bool, error) { return 92.5, true, nil }

func newTestRouter(t *testing.T, ratePerMinute int) http.Handler {
	t.Helper()
	sessions := session.NewManager(config.Session{
		Name:          "parcels_session",
		AuthKey:       strings.Repeat("k", 32),
		MaxAgeSeconds: 3600,
	})
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "router_test_total"}))

	return NewRouter(
		parcelhandler.NewParcelHandler(stubService{}, stubQueue{}),
		ratehandler.NewRateHandler(stubQueue{}, stubRates{}),
		Options{Session: sessions.Middleware, RegistrationRatePerMinute: ratePerMinute, Gatherer: reg},
	)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, 100)

	cases := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/parcels", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/parcels/7", wantStatus: http.StatusNotFound},
		{method: http.MethodPost, path: "/api/v1/parcels/7/assign-company", body: `{"company_id":1}`, wantStatus: http.StatusNotFound},
		{method: http.MethodPost, path: "/api/v1/parcels/registration", body: `{"name":"Laptop","weight":1,"value":1,"parcel_type_id":1}`, wantStatus: http.StatusAccepted},
		{method: http.MethodGet, path: "/api/v1/parcel-types", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/transport-companies", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/rates/usd", wantStatus: http.StatusOK},
		{method: http.MethodPost, path: "/api/v1/rates/usd/refresh", wantStatus: http.StatusAccepted},
		{method: http.MethodGet, path: "/api/v1/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			require.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestRouter_APIRoutesIssueSessionCookie(t *testing.T) {
	router := newTestRouter(t, 100)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Set-Cookie"), "parcels_session=")
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t, 100)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "router_test_total")
}

func TestRouter_RegistrationIsRateLimited(t *testing.T) {
	router := newTestRouter(t, 2)
	body := `{"name":"Laptop","weight":1,"value":1,"parcel_type_id":1}`

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parcels/registration", bytes.NewBufferString(body))
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	require.Equal(t, http.StatusAccepted, send())
	require.Equal(t, http.StatusAccepted, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	// reads are not limited
	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/parcels", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
}
