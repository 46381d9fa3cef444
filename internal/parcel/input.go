package parcel

import (
	"math"
	"parcels/internal/domain"
	"strings"

	"github.com/google/uuid"
)

const maxNameLength = 255

// Input is the client-supplied part of a parcel.
type Input struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	Value        float64 `json:"value"`
	ParcelTypeID int64   `json:"parcel_type_id"`
}

// NewParcel validates in and binds it to the registration that creates it.
func NewParcel(registrationID uuid.UUID, in Input) (domain.NewParcel, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return domain.NewParcel{}, &domain.ValidationError{Field: "name", Reason: "must not be blank"}
	case len([]rune(name)) > maxNameLength:
		return domain.NewParcel{}, &domain.ValidationError{Field: "name", Reason: "must be at most 255 characters"}
	case !positive(in.Weight):
		return domain.NewParcel{}, &domain.ValidationError{Field: "weight", Reason: "must be greater than 0"}
	case !positive(in.Value):
		return domain.NewParcel{}, &domain.ValidationError{Field: "value", Reason: "must be greater than 0"}
	case in.ParcelTypeID <= 0:
		return domain.NewParcel{}, &domain.ValidationError{Field: "parcel_type_id", Reason: "must be greater than 0"}
	case registrationID == uuid.Nil:
		return domain.NewParcel{}, &domain.ValidationError{Field: "registration_id", Reason: "must be set"}
	}

	return domain.NewParcel{
		RegistrationID: registrationID,
		Name:           name,
		Weight:         in.Weight,
		Value:          in.Value,
		ParcelTypeID:   in.ParcelTypeID,
	}, nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
