package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Get godoc
// @Summary Get parcel
// @Description Get one of the caller's parcels
// @Tags Parcels
// @Produce json
// @Param id path int true "Parcel ID"
// @Success 200 {object} ParcelResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /parcels/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parcel ID format")
		return
	}

	view, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, err, "ups, couldn't get parcel this time", logrus.Fields{"handler": "Get", "parcel_id": id})
		return
	}

	writeJSON(w, http.StatusOK, toParcelResponse(view.Parcel, view.ParcelTypeName))
}
