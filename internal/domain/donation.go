package domain

import (
	"time"

	"github.com/google/uuid"
)

type DonationStatus string

const (
	DonationScheduled DonationStatus = "scheduled"
	DonationCompleted DonationStatus = "completed"
	DonationCancelled DonationStatus = "cancelled"
)

type Donation struct {
	ID          uuid.UUID      `json:"id"`
	DonorID     uuid.UUID      `json:"donor_id"`
	RequestID   *uuid.UUID     `json:"request_id,omitempty"`
	FacilityID  *uuid.UUID     `json:"facility_id,omitempty"`
	BloodGroup  BloodGroup     `json:"blood_group"`
	Units       int            `json:"units"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Status      DonationStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

type ScheduleDonationInput struct {
	DonorID     string    `json:"donor_id" validate:"required,uuid"`
	BloodGroup  string    `json:"blood_group" validate:"required,bloodgroup"`
	RequestID   string    `json:"request_id" validate:"omitempty,uuid"`
	FacilityID  string    `json:"facility_id" validate:"omitempty,uuid"`
	Units       int       `json:"units" validate:"required,min=1,max=5"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}
