package domain

import (
	"time"

	"github.com/google/uuid"
)

type Parcel struct {
	ID                 int64
	RegistrationID     uuid.UUID
	Name               string
	Weight             float64
	Value              float64
	ParcelTypeID       int64
	DeliveryCost       *float64
	TransportCompanyID *int64
	UserID             string
	CreatedAt          time.Time
}

func (p Parcel) HasDeliveryCost() bool { return p.DeliveryCost != nil }

func (p Parcel) IsAssigned() bool { return p.TransportCompanyID != nil }

// ParcelView is a parcel joined with its type name, as returned by read queries.
type ParcelView struct {
	Parcel
	ParcelTypeName string
}

// NewParcel holds validated fields of a parcel that is about to be stored.
type NewParcel struct {
	RegistrationID uuid.UUID
	Name           string
	Weight         float64
	Value          float64
	ParcelTypeID   int64
}

// ListFilter narrows a user's parcel listing. Nil pointers mean "no filter".
type ListFilter struct {
	Skip            int
	Limit           int
	ParcelTypeID    *int64
	HasDeliveryCost *bool
}

type ParcelType struct {
	ID   int64
	Name string
}

type TransportCompany struct {
	ID   int64
	Name string
}
