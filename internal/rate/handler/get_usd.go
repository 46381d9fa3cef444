package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type GetUSDResponse struct {
	Currency string  `json:"currency" example:"USD"`
	Value    float64 `json:"value" example:"92.5"`
}

// GetUSD godoc
// @Summary Get cached USD rate
// @Description Get the USD rate currently used for delivery cost calculation
// @Tags Rates
// @Produce json
// @Success 200 {object} GetUSDResponse
// @Failure 404 {object} errorResponse "rate not cached yet"
// @Failure 503 {object} errorResponse
// @Router /rates/usd [get]
func (h *Handler) GetUSD(w http.ResponseWriter, r *http.Request) {
	value, ok, err := h.rates.Get(r.Context())
	if err != nil {
		logrus.WithError(err).WithField("handler", "GetUSD").Error("rate cache read failed")
		writeError(w, http.StatusServiceUnavailable, "rate cache unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "rate not cached yet")
		return
	}

	writeJSON(w, http.StatusOK, GetUSDResponse{Currency: "USD", Value: value})
}
