package favourites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
)

// Repository handles favourite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favourites repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// favouriteRow is the joined shape returned by ListByUserEmail.
type favouriteRow struct {
	ID                uuid.UUID
	BiodataID         uuid.UUID
	BiodataNo         int
	Name              string
	PermanentDivision string
	Occupation        *string
}

// Create inserts a favourite. The unique index on (user_email, biodata_id)
// rejects duplicates.
func (r *Repository) Create(ctx context.Context, row *models.Favourite) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Exists reports whether the user already favourited the biodata.
func (r *Repository) Exists(ctx context.Context, userEmail string, biodataID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favourite{}).
		Where("user_email = ? AND biodata_id = ?", userEmail, biodataID).
		Count(&count).Error
	return count > 0, err
}

// ListByUserEmail returns the user's favourites joined with the listed
// biodata's display fields, newest first.
func (r *Repository) ListByUserEmail(ctx context.Context, userEmail string) ([]favouriteRow, error) {
	var rows []favouriteRow
	err := r.db.WithContext(ctx).
		Model(&models.Favourite{}).
		Select("favourites.id, favourites.biodata_id, biodatas.biodata_no, biodatas.name, biodatas.permanent_division, biodatas.occupation").
		Joins("JOIN biodatas ON biodatas.id = favourites.biodata_id").
		Where("favourites.user_email = ?", userEmail).
		Order("favourites.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Delete removes a favourite, scoped to its owner. Returns the rows affected
// so callers can distinguish a missing row from a successful delete.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, userEmail string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, userEmail).
		Delete(&models.Favourite{})
	return result.RowsAffected, result.Error
}
