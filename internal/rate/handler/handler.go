package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"parcels/internal/jobs"

	"github.com/google/uuid"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, jobType jobs.Type, payload any) (uuid.UUID, error)
}

// RateReader reads the cached USD rate.
type RateReader interface {
	Get(ctx context.Context) (float64, bool, error)
}

type Handler struct {
	queue Enqueuer
	rates RateReader
}

func NewRateHandler(queue Enqueuer, rates RateReader) *Handler {
	return &Handler{queue: queue, rates: rates}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
