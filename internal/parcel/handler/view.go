package handler

import (
	"parcels/internal/domain"
	"time"
)

const notCalculated = "not calculated"

type ParcelResponse struct {
	ID                 int64     `json:"id" example:"42"`
	Name               string    `json:"name" example:"Laptop"`
	Weight             float64   `json:"weight" example:"2.5"`
	Value              float64   `json:"value" example:"1500"`
	ParcelTypeID       int64     `json:"parcel_type_id" example:"2"`
	ParcelTypeName     string    `json:"parcel_type_name,omitempty" example:"Electronics"`
	DeliveryCost       any       `json:"delivery_cost" swaggertype:"string" example:"1462.5"`
	TransportCompanyID *int64    `json:"transport_company_id" example:"1"`
	CreatedAt          time.Time `json:"created_at" example:"2025-01-02T15:04:05Z"`
}

func toParcelResponse(p domain.Parcel, typeName string) ParcelResponse {
	var cost any = notCalculated
	if p.DeliveryCost != nil {
		cost = *p.DeliveryCost
	}
	return ParcelResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Weight:             p.Weight,
		Value:              p.Value,
		ParcelTypeID:       p.ParcelTypeID,
		ParcelTypeName:     typeName,
		DeliveryCost:       cost,
		TransportCompanyID: p.TransportCompanyID,
		CreatedAt:          p.CreatedAt,
	}
}

func toParcelResponses(views []domain.ParcelView) []ParcelResponse {
	out := make([]ParcelResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toParcelResponse(v.Parcel, v.ParcelTypeName))
	}
	return out
}
