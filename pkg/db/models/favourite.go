package models

import (
	"time"

	"github.com/google/uuid"
)

// Favourite bookmarks a biodata for a user. The (user_email, biodata_id)
// pair is unique so a profile can be favourited at most once.
type Favourite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserEmail string    `gorm:"column:user_email;type:text;not null;uniqueIndex:idx_favourites_user_biodata"`
	BiodataID uuid.UUID `gorm:"column:biodata_id;type:uuid;not null;uniqueIndex:idx_favourites_user_biodata"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
