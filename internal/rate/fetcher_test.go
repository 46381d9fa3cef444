package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcels/internal/domain"
	"parcels/internal/jobs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider down")

// --- Testify mocks ---

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) GetUSDRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	rate, _ := args.Get(0).(float64)
	return rate, args.Error(1)
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

// --- FetchLiveRate ---

func TestFetcher_FetchLiveRate_WritesCache(t *testing.T) {
	client := new(MockRateClient)
	cache := new(MockRateCache)
	f := NewFetcher(client, cache, time.Second)

	client.On("GetUSDRate", mock.Anything).Return(92.5, nil).Once()
	cache.On("Set", mock.Anything, 92.5).Return(nil).Once()

	rate, err := f.FetchLiveRate(context.Background())

	require.NoError(t, err)
	require.InDelta(t, 92.5, rate, 1e-9)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFetcher_FetchLiveRate_CacheWriteFailureIsNotReturned(t *testing.T) {
	client := new(MockRateClient)
	cache := new(MockRateCache)
	f := NewFetcher(client, cache, time.Second)

	client.On("GetUSDRate", mock.Anything).Return(92.5, nil).Once()
	cache.On("Set", mock.Anything, 92.5).Return(domain.ErrCacheUnavailable).Once()

	rate, err := f.FetchLiveRate(context.Background())

	require.NoError(t, err)
	require.InDelta(t, 92.5, rate, 1e-9)
	cache.AssertExpectations(t)
}

func TestFetcher_FetchLiveRate_UpstreamError(t *testing.T) {
	client := new(MockRateClient)
	cache := new(MockRateCache)
	f := NewFetcher(client, cache, time.Second)

	client.On("GetUSDRate", mock.Anything).Return(0.0, errors.Join(domain.ErrUpstream, errProvider)).Once()

	_, err := f.FetchLiveRate(context.Background())

	require.ErrorIs(t, err, domain.ErrUpstream)
	require.False(t, domain.IsPermanent(err))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestFetcher_FetchLiveRate_AppliesRequestTimeout(t *testing.T) {
	client := new(MockRateClient)
	cache := new(MockRateCache)
	f := NewFetcher(client, cache, 30*time.Millisecond)

	client.On("GetUSDRate", mock.Anything).Return(0.0, domain.ErrUpstream).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.WithinDuration(t, time.Now().Add(30*time.Millisecond), deadline, 30*time.Millisecond)
	}).Once()

	_, err := f.FetchLiveRate(context.Background())

	require.Error(t, err)
	client.AssertExpectations(t)
}

func TestNewFetcher_DefaultsTimeout(t *testing.T) {
	f := NewFetcher(new(MockRateClient), new(MockRateCache), 0)
	require.Equal(t, 5*time.Second, f.requestTimeout)
}

// --- RefreshJobHandler ---

func TestRefreshJobHandler(t *testing.T) {
	client := new(MockRateClient)
	cache := new(MockRateCache)
	f := NewFetcher(client, cache, time.Second)

	client.On("GetUSDRate", mock.Anything).Return(91.0, nil).Once()
	cache.On("Set", mock.Anything, 91.0).Return(nil).Once()
	client.On("GetUSDRate", mock.Anything).Return(0.0, domain.ErrUpstream).Once()

	h := RefreshJobHandler(f)
	job := jobs.Job{ID: uuid.New(), Type: jobs.TypeRefreshRate, Attempt: 1}
	require.NoError(t, h(context.Background(), job))
	require.ErrorIs(t, h(context.Background(), job), domain.ErrUpstream)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}
