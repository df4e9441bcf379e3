package biodatas

import (
	"time"

	"github.com/google/uuid"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
)

// BiodataSummary is the listing-card shape exposed by the public listing.
// Contact fields are never present on summaries.
type BiodataSummary struct {
	ID                uuid.UUID `json:"id"`
	BiodataNo         int       `json:"biodataId"`
	Type              string    `json:"type"`
	PhotoURL          *string   `json:"photoURL,omitempty"`
	Age               int       `json:"age"`
	Occupation        *string   `json:"occupation,omitempty"`
	PermanentDivision string    `json:"permanentDivision"`
	IsPremium         bool      `json:"isPremium"`
}

// BiodataDTO is the full profile shape. ContactEmail and PhoneNumber are
// populated only when the viewer is entitled to them.
type BiodataDTO struct {
	ID        uuid.UUID `json:"id"`
	BiodataNo int       `json:"biodataId"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	PhotoURL  *string   `json:"photoURL,omitempty"`

	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Age         int        `json:"age"`
	Height      *string    `json:"height,omitempty"`
	Weight      *string    `json:"weight,omitempty"`
	Occupation  *string    `json:"occupation,omitempty"`
	Race        *string    `json:"race,omitempty"`
	BloodType   *string    `json:"bloodType,omitempty"`
	FatherName  *string    `json:"fatherName,omitempty"`
	MotherName  *string    `json:"motherName,omitempty"`

	PermanentDivision string `json:"permanentDivision"`
	PresentDivision   string `json:"presentDivision"`

	ExpectedPartnerAge    *string `json:"expectedPartnerAge,omitempty"`
	ExpectedPartnerHeight *string `json:"expectedPartnerHeight,omitempty"`
	ExpectedPartnerWeight *string `json:"expectedPartnerWeight,omitempty"`

	ContactEmail *string `json:"contactEmail,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`

	IsPremium        bool `json:"isPremium"`
	PremiumRequested bool `json:"premiumRequested"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListResponse is the canonical listing payload.
type ListResponse struct {
	Biodatas   []BiodataSummary `json:"biodatas"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

func SummaryFromModel(b *models.Biodata) BiodataSummary {
	return BiodataSummary{
		ID:                b.ID,
		BiodataNo:         b.BiodataNo,
		Type:              b.Type,
		PhotoURL:          b.PhotoURL,
		Age:               b.Age,
		Occupation:        b.Occupation,
		PermanentDivision: b.PermanentDivision,
		IsPremium:         b.IsPremium,
	}
}

func SummariesFromModels(rows []models.Biodata) []BiodataSummary {
	out := make([]BiodataSummary, 0, len(rows))
	for i := range rows {
		out = append(out, SummaryFromModel(&rows[i]))
	}
	return out
}

// FromModel maps the model to the full DTO. Contact fields are included only
// when includeContact is true.
func FromModel(b *models.Biodata, includeContact bool) *BiodataDTO {
	if b == nil {
		return nil
	}

	dto := &BiodataDTO{
		ID:                    b.ID,
		BiodataNo:             b.BiodataNo,
		Type:                  b.Type,
		Name:                  b.Name,
		PhotoURL:              b.PhotoURL,
		DateOfBirth:           b.DateOfBirth,
		Age:                   b.Age,
		Height:                b.Height,
		Weight:                b.Weight,
		Occupation:            b.Occupation,
		Race:                  b.Race,
		BloodType:             b.BloodType,
		FatherName:            b.FatherName,
		MotherName:            b.MotherName,
		PermanentDivision:     b.PermanentDivision,
		PresentDivision:       b.PresentDivision,
		ExpectedPartnerAge:    b.ExpectedPartnerAge,
		ExpectedPartnerHeight: b.ExpectedPartnerHeight,
		ExpectedPartnerWeight: b.ExpectedPartnerWeight,
		IsPremium:             b.IsPremium,
		PremiumRequested:      b.PremiumRequested,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}

	if includeContact {
		contactEmail := b.ContactEmail
		phone := b.PhoneNumber
		dto.ContactEmail = &contactEmail
		dto.PhoneNumber = &phone
	}
	return dto
}
