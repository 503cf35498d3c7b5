package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestVerified  RequestStatus = "verified"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// IsAlertable reports whether a request of this urgency should be pushed to
// the live alert stream.
func (u Urgency) IsAlertable() bool {
	return u == UrgencyHigh || u == UrgencyEmergency
}

type BloodRequest struct {
	ID          uuid.UUID     `json:"id"`
	PatientName string        `json:"patient_name"`
	BloodGroup  BloodGroup    `json:"blood_group"`
	Units       int           `json:"units"`
	Urgency     Urgency       `json:"urgency"`
	Hospital    string        `json:"hospital"`
	ContactName string        `json:"contact_name"`
	Phone       string        `json:"phone"`
	Lat         *float64      `json:"latitude,omitempty"`
	Lng         *float64      `json:"longitude,omitempty"`
	RadiusKM    float64       `json:"radius_km"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CreateRequestInput struct {
	PatientName string   `json:"patient_name" validate:"required,min=2,max=120"`
	BloodGroup  string   `json:"blood_group" validate:"required,bloodgroup"`
	Units       int      `json:"units" validate:"required,min=1,max=20"`
	Urgency     Urgency  `json:"urgency" validate:"required,oneof=low medium high emergency"`
	Hospital    string   `json:"hospital" validate:"required,min=2,max=200"`
	ContactName string   `json:"contact_name" validate:"required,min=2,max=120"`
	Phone       string   `json:"phone" validate:"required,min=5,max=20"`
	Lat         *float64 `json:"latitude" validate:"omitempty,lat"`
	Lng         *float64 `json:"longitude" validate:"omitempty,lng"`
	RadiusKM    float64  `json:"radius_km" validate:"omitempty,radius_km"`
}

type UpdateRequestStatusInput struct {
	Status RequestStatus `json:"status" validate:"required,oneof=pending verified fulfilled cancelled"`
}

type ListRequestsResponse struct {
	Requests []BloodRequest `json:"requests"`
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
	Total    int64          `json:"total"`
}
