package domain

import "github.com/google/uuid"

// UserProfile is the directory snapshot used to resolve alert-stream filters.
type UserProfile struct {
	ID         uuid.UUID  `json:"id"`
	BloodGroup BloodGroup `json:"blood_group"`
	Lat        *float64   `json:"latitude,omitempty"`
	Lng        *float64   `json:"longitude,omitempty"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	IsActive   bool       `json:"is_active"`
	FacilityID *uuid.UUID `json:"facility_id,omitempty"`
}
