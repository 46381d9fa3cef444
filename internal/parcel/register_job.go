package parcel

import (
	"context"
	"parcels/internal/jobs"
)

// RegisterPayload is the queued form of a registration request.
type RegisterPayload struct {
	Input
	UserID string `json:"user_id"`
}

// RegisterJobHandler runs the registration pipeline for a queued job.
// The job id doubles as the registration id, which makes retries land on the same parcel.
func RegisterJobHandler(r *Registrar) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		payload, err := jobs.Decode[RegisterPayload](job)
		if err != nil {
			return err
		}
		_, err = r.Register(ctx, RegisterCommand{
			RegistrationID: job.ID,
			Input:          payload.Input,
			UserID:         payload.UserID,
		})
		return err
	}
}
