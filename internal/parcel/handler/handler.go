package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"parcels/internal/domain"
	"parcels/internal/jobs"
	"parcels/internal/parcel"
	"parcels/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context, userID string, q parcel.ListQuery) (parcel.Page, error)
	Get(ctx context.Context, id int64, userID string) (domain.ParcelView, error)
	AssignCompany(ctx context.Context, parcelID, companyID int64, userID string) (domain.Parcel, error)
	ParcelTypes(ctx context.Context) ([]domain.ParcelType, error)
	TransportCompanies(ctx context.Context) ([]domain.TransportCompany, error)
}

type Enqueuer interface {
	Enqueue(ctx context.Context, jobType jobs.Type, payload any) (uuid.UUID, error)
}

type Handler struct {
	service  Service
	queue    Enqueuer
	validate *validator.Validate
}

func NewParcelHandler(service Service, queue Enqueuer) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report json names in validation messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{service: service, queue: queue, validate: validate}
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

// writeDomainError maps service errors to responses. Concurrency and unexpected errors are logged and hidden behind msg.
func writeDomainError(w http.ResponseWriter, err error, msg string, fields logrus.Fields) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrParcelNotFound):
		writeError(w, http.StatusNotFound, "parcel not found")
	case errors.Is(err, domain.ErrAlreadyAssigned):
		writeError(w, http.StatusBadRequest, "parcel is already assigned to a transport company")
	case errors.Is(err, domain.ErrIntegrity):
		writeError(w, http.StatusBadRequest, "request references unknown data")
	default:
		logrus.WithError(err).WithFields(fields).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// requireUser reads the session user id; the session middleware always sets it on routed requests.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
	}
	return userID, ok
}
