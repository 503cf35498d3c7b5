package domain

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	FacilityID uuid.UUID  `json:"facility_id"`
	BloodGroup BloodGroup `json:"blood_group"`
	Units      int        `json:"units"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type AdjustInventoryInput struct {
	FacilityID string `json:"facility_id" validate:"required,uuid"`
	BloodGroup string `json:"blood_group" validate:"required,bloodgroup"`
	// Delta may be negative; the stored unit count never drops below zero.
	Delta int `json:"delta" validate:"required,min=-100,max=100"`
}
