package contacts

import "github.com/google/uuid"

// ContactRequestDTO is a contact request with the target biodata's display
// fields. ContactEmail and PhoneNumber are only set once the request is
// approved.
type ContactRequestDTO struct {
	ID        uuid.UUID `json:"id"`
	UserEmail string    `json:"userEmail"`
	BiodataID uuid.UUID `json:"biodataDbId"`
	BiodataNo int       `json:"biodataId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`

	ContactEmail *string `json:"contactEmail,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
}

// CreateContactRequest asks for a biodata's contact details.
type CreateContactRequest struct {
	BiodataID uuid.UUID `json:"biodataId" validate:"required"`
}

func fromRow(row requestRow) ContactRequestDTO {
	dto := ContactRequestDTO{
		ID:        row.ID,
		UserEmail: row.UserEmail,
		BiodataID: row.BiodataID,
		BiodataNo: row.BiodataNo,
		Name:      row.Name,
		Status:    row.Status,
	}
	if row.Status == StatusApproved {
		email, phone := row.ContactEmail, row.PhoneNumber
		dto.ContactEmail = &email
		dto.PhoneNumber = &phone
	}
	return dto
}

func fromRows(rows []requestRow) []ContactRequestDTO {
	out := make([]ContactRequestDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}
