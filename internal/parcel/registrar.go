package parcel

import (
	"context"
	"fmt"
	"parcels/internal/adapters"
	"parcels/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RateFetcher resolves the live USD rate when the cache has none.
type RateFetcher interface {
	FetchLiveRate(ctx context.Context) (float64, error)
}

type RegisterCommand struct {
	RegistrationID uuid.UUID
	Input          Input
	UserID         string
}

// Registrar stores a parcel and prices it. It runs inside a job, so every step must be safe to repeat.
type Registrar struct {
	store   adapters.ParcelRepository
	cache   adapters.RateCache
	fetcher RateFetcher
}

func (r *Registrar) Register(ctx context.Context, cmd RegisterCommand) (domain.Parcel, error) {
	if cmd.UserID == "" {
		return domain.Parcel{}, &domain.ValidationError{Field: "user_id", Reason: "must be set"}
	}
	np, err := NewParcel(cmd.RegistrationID, cmd.Input)
	if err != nil {
		return domain.Parcel{}, err
	}

	p, err := r.store.Create(ctx, np, cmd.UserID)
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to create parcel: %w", err)
	}
	if p.HasDeliveryCost() {
		// replay of a registration that already completed
		return p, nil
	}

	rate, err := r.usdRate(ctx)
	if err != nil {
		return domain.Parcel{}, err
	}

	cost := DeliveryCost(p.Weight, p.Value, rate)
	if err = r.store.SetDeliveryCost(ctx, p.ID, cost); err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to set delivery cost for parcel %d: %w", p.ID, err)
	}
	p.DeliveryCost = &cost

	logrus.WithFields(logrus.Fields{
		"parcel_id":       p.ID,
		"registration_id": p.RegistrationID,
		"delivery_cost":   cost,
	}).Info("Parcel registered")
	return p, nil
}

// usdRate prefers the cached rate; an unreachable cache counts as a miss.
func (r *Registrar) usdRate(ctx context.Context) (float64, error) {
	rate, ok, err := r.cache.Get(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Rate cache read failed, fetching live rate")
	}
	if err == nil && ok {
		return rate, nil
	}

	rate, err = r.fetcher.FetchLiveRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve usd rate: %w", err)
	}
	return rate, nil
}

func NewRegistrar(store adapters.ParcelRepository, cache adapters.RateCache, fetcher RateFetcher) *Registrar {
	return &Registrar{store: store, cache: cache, fetcher: fetcher}
}
