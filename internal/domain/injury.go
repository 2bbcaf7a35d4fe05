package domain

import (
	"time"

	"github.com/google/uuid"
)

// InjuryClassNotDetected is the classifier sentinel before/without a finding.
const InjuryClassNotDetected = "Not Detected"

// InjuryRecord is created in one shot: the image upload and the
// synchronous classification are part of the same request.
type InjuryRecord struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index"`
	ImageURL    string    `json:"imageUrl" gorm:"not null"`
	InjuryClass string    `json:"injuryClass" gorm:"not null;default:'Not Detected'"`
	Probability float64   `json:"probability" gorm:"not null;default:0"`
	UploadedAt  time.Time `json:"uploadedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
