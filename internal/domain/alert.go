package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyAlert is produced once per qualifying request and consumed by zero
// or more live subscribers. Lat/Lng nil means the alert cannot be geo-targeted
// and is delivered to nobody.
type EmergencyAlert struct {
	RequestID  uuid.UUID      `json:"request_id"`
	BloodGroup BloodGroup     `json:"blood_group"`
	Lat        *float64       `json:"latitude,omitempty"`
	Lng        *float64       `json:"longitude,omitempty"`
	RadiusKM   float64        `json:"radius_km"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// SubscriberFilter is what an alert-stream client registers: optional blood
// group, optional origin, delivery radius.
type SubscriberFilter struct {
	UserID     string
	BloodGroup BloodGroup
	Lat        *float64
	Lng        *float64
	RadiusKM   float64
}

// RecentAlert is the pull-based fallback representation for clients without
// streaming support.
type RecentAlert struct {
	RequestID  uuid.UUID  `json:"request_id"`
	BloodGroup BloodGroup `json:"blood_group"`
	Urgency    Urgency    `json:"urgency"`
	Hospital   string     `json:"hospital"`
	Units      int        `json:"units"`
	Lat        *float64   `json:"latitude,omitempty"`
	Lng        *float64   `json:"longitude,omitempty"`
	DistanceKM *float64   `json:"distance_km,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
