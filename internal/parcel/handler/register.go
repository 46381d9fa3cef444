package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"parcels/internal/jobs"
	"parcels/internal/parcel"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const maxRegisterBodyBytes = 4 << 10

type RegisterRequest struct {
	Name         string  `json:"name" validate:"required,max=255" example:"Laptop"`
	Weight       float64 `json:"weight" validate:"gt=0" example:"2.5"`
	Value        float64 `json:"value" validate:"gt=0" example:"1500"`
	ParcelTypeID int64   `json:"parcel_type_id" validate:"gt=0" example:"2"`
}

type RegisterResponse struct {
	TaskID string `json:"task_id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
}

// Register godoc
// @Summary Register parcel
// @Description Accept a parcel for asynchronous registration; the delivery cost is calculated in the background
// @Tags Parcels
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Parcel"
// @Success 202 {object} RegisterResponse
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /parcels/registration [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req RegisterRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	taskID, err := h.queue.Enqueue(r.Context(), jobs.TypeRegisterParcel, parcel.RegisterPayload{
		Input: parcel.Input{
			Name:         req.Name,
			Weight:       req.Weight,
			Value:        req.Value,
			ParcelTypeID: req.ParcelTypeID,
		},
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, jobs.ErrUnavailable) || errors.Is(err, jobs.ErrQueueClosed) {
			writeError(w, http.StatusServiceUnavailable, "service is busy, try again later")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Register", "user_id": userID}).Error("registration wasn't scheduled")
		writeError(w, http.StatusInternalServerError, "failed to schedule parcel registration")
		return
	}

	writeJSON(w, http.StatusAccepted, RegisterResponse{TaskID: taskID.String()})
}

// validationMessage renders the first failed rule as "field: reason".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s characters", field, fe.Param())
	default:
		return field + ": is invalid"
	}
}
