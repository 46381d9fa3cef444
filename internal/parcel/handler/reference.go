package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type ParcelTypeResponse struct {
	ID   int64  `json:"id" example:"2"`
	Name string `json:"name" example:"Electronics"`
}

type TransportCompanyResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"DHL"`
}

// ParcelTypes godoc
// @Summary List parcel types
// @Tags Reference
// @Produce json
// @Success 200 {array} ParcelTypeResponse
// @Failure 500 {object} errorResponse
// @Router /parcel-types [get]
func (h *Handler) ParcelTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ParcelTypes(r.Context())
	if err != nil {
		writeDomainError(w, err, "ups, couldn't list parcel types this time", logrus.Fields{"handler": "ParcelTypes"})
		return
	}

	res := make([]ParcelTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, ParcelTypeResponse{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, res)
}

// TransportCompanies godoc
// @Summary List transport companies
// @Tags Reference
// @Produce json
// @Success 200 {array} TransportCompanyResponse
// @Failure 500 {object} errorResponse
// @Router /transport-companies [get]
func (h *Handler) TransportCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.TransportCompanies(r.Context())
	if err != nil {
		writeDomainError(w, err, "ups, couldn't list transport companies this time", logrus.Fields{"handler": "TransportCompanies"})
		return
	}

	res := make([]TransportCompanyResponse, 0, len(companies))
	for _, c := range companies {
		res = append(res, TransportCompanyResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, res)
}
