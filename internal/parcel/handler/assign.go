package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const maxAssignBodyBytes = 256

type AssignCompanyRequest struct {
	CompanyID int64 `json:"company_id" validate:"gt=0" example:"1"`
}

// AssignCompany godoc
// @Summary Assign transport company
// @Description Bind a parcel to a transport company; a parcel can be assigned only once
// @Tags Parcels
// @Accept json
// @Produce json
// @Param id path int true "Parcel ID"
// @Param request body AssignCompanyRequest true "Company"
// @Success 200 {object} ParcelResponse
// @Failure 400 {object} errorResponse "invalid input or already assigned"
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /parcels/{id}/assign-company [post]
func (h *Handler) AssignCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	parcelID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid parcel ID format")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAssignBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AssignCompanyRequest
	if err = dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err = h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	p, err := h.service.AssignCompany(r.Context(), parcelID, req.CompanyID, userID)
	if err != nil {
		writeDomainError(w, err, "ups, couldn't assign company this time", logrus.Fields{
			"handler":    "AssignCompany",
			"parcel_id":  parcelID,
			"company_id": req.CompanyID,
		})
		return
	}

	writeJSON(w, http.StatusOK, toParcelResponse(p, ""))
}
