package handler

import (
	"errors"
	"net/http"
	"parcels/internal/jobs"

	"github.com/sirupsen/logrus"
)

type ScheduleRefreshResponse struct {
	TaskID string `json:"task_id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
}

// ScheduleRefresh godoc
// @Summary Refresh USD rate
// @Description Enqueue a background fetch of the live USD rate into the cache
// @Tags Rates
// @Produce json
// @Success 202 {object} ScheduleRefreshResponse
// @Failure 503 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/usd/refresh [post]
func (h *Handler) ScheduleRefresh(w http.ResponseWriter, r *http.Request) {
	taskID, err := h.queue.Enqueue(r.Context(), jobs.TypeRefreshRate, struct{}{})
	if err != nil {
		if errors.Is(err, jobs.ErrUnavailable) || errors.Is(err, jobs.ErrQueueClosed) {
			writeError(w, http.StatusServiceUnavailable, "service is busy, try again later")
			return
		}
		logrus.WithError(err).WithField("handler", "ScheduleRefresh").Error("rate refresh wasn't scheduled")
		writeError(w, http.StatusInternalServerError, "failed to schedule rate refresh")
		return
	}

	writeJSON(w, http.StatusAccepted, ScheduleRefreshResponse{TaskID: taskID.String()})
}
