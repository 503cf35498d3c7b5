package domain

import (
	"time"

	"github.com/google/uuid"
)

// EligibilityWindow is the minimum gap between completed donations.
const EligibilityWindow = 90 * 24 * time.Hour

// Donor is a read-only snapshot of a donor-eligible user from the user
// directory. Lat/Lng are pointers: both set or both nil, partial coordinates
// are stored as "no location".
type Donor struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	BloodGroup       BloodGroup `json:"blood_group"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Lat              *float64   `json:"latitude,omitempty"`
	Lng              *float64   `json:"longitude,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

// MatchedDonor is a donor with its computed distance from the query origin.
type MatchedDonor struct {
	Donor
	DistanceKM float64 `json:"distance_km"`
}

type NearbyQuery struct {
	BloodGroup string
	Lat        float64
	Lng        float64
	RadiusKM   float64
	Limit      int
}

type NearbyResult struct {
	BloodGroup BloodGroup     `json:"blood_group"`
	Donors     []MatchedDonor `json:"donors"`
	// CandidateCount is the number of locatable eligible donors for the
	// group, counted before the radius and limit cuts.
	CandidateCount int     `json:"candidate_count"`
	RadiusKM       float64 `json:"radius_km"`
	CacheHit       bool    `json:"-"`
}
