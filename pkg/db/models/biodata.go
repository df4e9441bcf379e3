package models

import (
	"time"

	"github.com/google/uuid"
)

// Biodata is the marriage-profile record, keyed one-to-one by owner email.
// BiodataNo is the human-facing sequential number shown on listing cards.
type Biodata struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BiodataNo int       `gorm:"column:biodata_no;not null;uniqueIndex"`

	OwnerEmail string `gorm:"column:owner_email;type:text;not null;uniqueIndex"`

	Type     string  `gorm:"column:type;not null"`
	Name     string  `gorm:"column:name;not null"`
	PhotoURL *string `gorm:"column:photo_url"`

	DateOfBirth *time.Time `gorm:"column:date_of_birth"`
	Age         int        `gorm:"column:age;not null"`
	Height      *string    `gorm:"column:height"`
	Weight      *string    `gorm:"column:weight"`
	Occupation  *string    `gorm:"column:occupation"`
	Race        *string    `gorm:"column:race"`
	BloodType   *string    `gorm:"column:blood_type"`
	FatherName  *string    `gorm:"column:father_name"`
	MotherName  *string    `gorm:"column:mother_name"`

	PermanentDivision string `gorm:"column:permanent_division;not null;index"`
	PresentDivision   string `gorm:"column:present_division;not null;index"`

	ExpectedPartnerAge    *string `gorm:"column:expected_partner_age"`
	ExpectedPartnerHeight *string `gorm:"column:expected_partner_height"`
	ExpectedPartnerWeight *string `gorm:"column:expected_partner_weight"`

	ContactEmail string `gorm:"column:contact_email;not null"`
	PhoneNumber  string `gorm:"column:phone_number;not null"`

	IsPremium        bool `gorm:"column:is_premium;not null;default:false"`
	PremiumRequested bool `gorm:"column:premium_requested;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
