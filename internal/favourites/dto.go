package favourites

import "github.com/google/uuid"

// FavouriteDTO is a favourite entry with the display fields of the
// bookmarked biodata.
type FavouriteDTO struct {
	ID                uuid.UUID `json:"id"`
	BiodataID         uuid.UUID `json:"biodataDbId"`
	BiodataNo         int       `json:"biodataId"`
	Name              string    `json:"name"`
	PermanentDivision string    `json:"permanentDivision"`
	Occupation        *string   `json:"occupation,omitempty"`
}

// AddFavouriteRequest asks to bookmark a biodata by its database id.
type AddFavouriteRequest struct {
	BiodataID uuid.UUID `json:"biodataId" validate:"required"`
}

func fromRow(row favouriteRow) FavouriteDTO {
	return FavouriteDTO{
		ID:                row.ID,
		BiodataID:         row.BiodataID,
		BiodataNo:         row.BiodataNo,
		Name:              row.Name,
		PermanentDivision: row.PermanentDivision,
		Occupation:        row.Occupation,
	}
}

func fromRows(rows []favouriteRow) []FavouriteDTO {
	out := make([]FavouriteDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}
