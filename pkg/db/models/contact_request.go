package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactRequest records a user's ask for a biodata's contact details.
// Contact fields are released to the requester only once an admin approves.
type ContactRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserEmail string    `gorm:"column:user_email;type:text;not null;uniqueIndex:idx_contact_requests_user_biodata"`
	BiodataID uuid.UUID `gorm:"column:biodata_id;type:uuid;not null;uniqueIndex:idx_contact_requests_user_biodata"`
	Status    string    `gorm:"column:status;not null;default:pending;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
