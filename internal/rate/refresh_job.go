package rate

import (
	"context"
	"parcels/internal/jobs"

	"github.com/sirupsen/logrus"
)

// RefreshJobHandler re-fetches the live rate so registrations keep hitting a warm cache.
func RefreshJobHandler(f *Fetcher) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		rate, err := f.FetchLiveRate(ctx)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"job_id": job.ID, "rate": rate}).Info("USD rate refreshed")
		return nil
	}
}
