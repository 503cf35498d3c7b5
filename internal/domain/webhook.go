package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookPayload is what the notifier POSTs to the configured facility
// endpoint when an emergency request is broadcast.
type WebhookPayload struct {
	RequestID  uuid.UUID  `json:"request_id"`
	BloodGroup BloodGroup `json:"blood_group"`
	Urgency    Urgency    `json:"urgency"`
	Hospital   string     `json:"hospital"`
	Units      int        `json:"units"`
	Delivered  int        `json:"delivered"`
	CreatedAt  time.Time  `json:"created_at"`
}
