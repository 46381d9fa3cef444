package handler

import (
	"net/http"
	"parcels/internal/parcel"
	"strconv"

	"github.com/sirupsen/logrus"
)

type ListResponse struct {
	Parcels []ParcelResponse `json:"parcels"`
	Total   int              `json:"total" example:"12"`
}

// List godoc
// @Summary List parcels
// @Description List the caller's parcels, filtered and paginated
// @Tags Parcels
// @Produce json
// @Param page query int false "Page number, from 1" default(1)
// @Param page_size query int false "Page size, 1..100" default(10)
// @Param parcel_type_id query int false "Parcel type filter"
// @Param has_delivery_cost query bool false "Only priced (true) or unpriced (false) parcels"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /parcels [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q, msg := parseListQuery(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	page, err := h.service.List(r.Context(), userID, q)
	if err != nil {
		writeDomainError(w, err, "ups, couldn't list parcels this time", logrus.Fields{"handler": "List", "user_id": userID})
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Parcels: toParcelResponses(page.Items), Total: page.Total})
}

// parseListQuery returns a non-empty message when a query parameter is malformed.
func parseListQuery(r *http.Request) (parcel.ListQuery, string) {
	values := r.URL.Query()
	var q parcel.ListQuery

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, "page: must be an integer"
		}
		q.Page = n
		if n == 0 {
			return q, "page: must be at least 1"
		}
	}
	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, "page_size: must be an integer"
		}
		q.PageSize = n
		if n == 0 {
			return q, "page_size: must be between 1 and 100"
		}
	}
	if raw := values.Get("parcel_type_id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, "parcel_type_id: must be an integer"
		}
		q.ParcelTypeID = &n
	}
	if raw := values.Get("has_delivery_cost"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return q, "has_delivery_cost: must be a boolean"
		}
		q.HasDeliveryCost = &b
	}
	return q, ""
}
