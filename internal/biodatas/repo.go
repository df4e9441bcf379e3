package biodatas

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
	"github.com/tahmidr/matrimony-backend/pkg/enums"
)

// ListFilter narrows the public listing query. Zero values mean "no filter".
type ListFilter struct {
	Type              string
	PermanentDivision string
	PresentDivision   string
	MinAge            int
	MaxAge            int
	Sort              enums.SortOrder
	Limit             int
	Offset            int
}

// Repository exposes biodata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a biodatas repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the filtered page plus the total row count for the same filter.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Biodata, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Biodata{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.PermanentDivision != "" {
		query = query.Where("permanent_division = ?", filter.PermanentDivision)
	}
	if filter.PresentDivision != "" {
		query = query.Where("present_division = ?", filter.PresentDivision)
	}
	if filter.MinAge > 0 {
		query = query.Where("age >= ?", filter.MinAge)
	}
	if filter.MaxAge > 0 {
		query = query.Where("age <= ?", filter.MaxAge)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "age ASC, biodata_no ASC"
	if filter.Sort == enums.SortDesc {
		order = "age DESC, biodata_no ASC"
	}

	var rows []models.Biodata
	err := query.
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID loads a biodata by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Biodata, error) {
	var row models.Biodata
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByOwnerEmail loads the single biodata owned by the given email.
func (r *Repository) FindByOwnerEmail(ctx context.Context, email string) (*models.Biodata, error) {
	var row models.Biodata
	if err := r.db.WithContext(ctx).Where("owner_email = ?", email).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// NextBiodataNo reserves the next sequential human-facing number. Runs inside
// the insert transaction; the unique index on biodata_no rejects a lost race.
func (r *Repository) NextBiodataNo(ctx context.Context) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.Biodata{}).
		Select("COALESCE(MAX(biodata_no), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create inserts a new biodata row.
func (r *Repository) Create(ctx context.Context, row *models.Biodata) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update persists the mutable profile fields of an existing row. BiodataNo,
// owner email, and premium flags are not touched by profile updates.
func (r *Repository) Update(ctx context.Context, row *models.Biodata) error {
	return r.db.WithContext(ctx).
		Model(&models.Biodata{}).
		Where("id = ?", row.ID).
		Select(
			"type", "name", "photo_url", "date_of_birth", "age", "height", "weight",
			"occupation", "race", "blood_type", "father_name", "mother_name",
			"permanent_division", "present_division",
			"expected_partner_age", "expected_partner_height", "expected_partner_weight",
			"contact_email", "phone_number",
		).
		Updates(row).Error
}

// MarkPremiumRequested flips premium_requested for a non-premium biodata.
func (r *Repository) MarkPremiumRequested(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Biodata{}).
		Where("id = ? AND is_premium = ? AND premium_requested = ?", id, false, false).
		UpdateColumn("premium_requested", true)
	return result.RowsAffected, result.Error
}

// ApprovePremium promotes a requested biodata to premium.
func (r *Repository) ApprovePremium(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Biodata{}).
		Where("id = ? AND premium_requested = ?", id, true).
		UpdateColumns(map[string]any{
			"is_premium":        true,
			"premium_requested": false,
		})
	return result.RowsAffected, result.Error
}

// ListPendingPremium returns biodatas awaiting premium approval.
func (r *Repository) ListPendingPremium(ctx context.Context) ([]models.Biodata, error) {
	var rows []models.Biodata
	err := r.db.WithContext(ctx).
		Where("premium_requested = ? AND is_premium = ?", true, false).
		Order("updated_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// OverviewCounts aggregates the dashboard counters in one round trip per metric.
type OverviewCounts struct {
	TotalBiodatas   int64 `json:"totalBiodatas"`
	MaleBiodatas    int64 `json:"maleBiodatas"`
	FemaleBiodatas  int64 `json:"femaleBiodatas"`
	PremiumBiodatas int64 `json:"premiumBiodatas"`
	PendingPremium  int64 `json:"pendingPremium"`
}

// CountOverview computes the biodata-side dashboard counters.
func (r *Repository) CountOverview(ctx context.Context) (*OverviewCounts, error) {
	counts := &OverviewCounts{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Biodata{})
	}

	if err := base().Count(&counts.TotalBiodatas).Error; err != nil {
		return nil, err
	}
	if err := base().Where("type = ?", string(enums.BiodataTypeMale)).Count(&counts.MaleBiodatas).Error; err != nil {
		return nil, err
	}
	if err := base().Where("type = ?", string(enums.BiodataTypeFemale)).Count(&counts.FemaleBiodatas).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_premium = ?", true).Count(&counts.PremiumBiodatas).Error; err != nil {
		return nil, err
	}
	if err := base().Where("premium_requested = ? AND is_premium = ?", true, false).Count(&counts.PendingPremium).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
