package rate

import (
	"context"
	"fmt"
	"parcels/internal/adapters"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultRequestTimeout = 5 * time.Second

// Fetcher asks the rate provider for the current USD rate and refreshes the cache with it.
type Fetcher struct {
	client         adapters.RateClient
	cache          adapters.RateCache
	requestTimeout time.Duration
}

func (f *Fetcher) FetchLiveRate(ctx context.Context) (float64, error) {
	// a slow provider fails the attempt, the job queue retries it later
	reqCtx, cancel := context.WithTimeout(ctx, f.requestTimeout)
	defer cancel()

	rate, err := f.client.GetUSDRate(reqCtx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch usd rate: %w", err)
	}

	if setErr := f.cache.Set(ctx, rate); setErr != nil {
		logrus.WithError(setErr).WithField("rate", rate).Warn("Live rate fetched but not cached")
	} else {
		logrus.WithField("rate", rate).Debug("USD rate cached")
	}
	return rate, nil
}

func NewFetcher(client adapters.RateClient, cache adapters.RateCache, requestTimeout time.Duration) *Fetcher {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Fetcher{client: client, cache: cache, requestTimeout: requestTimeout}
}
