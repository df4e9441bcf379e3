package contacts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tahmidr/matrimony-backend/pkg/db/models"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Repository handles contact request persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contacts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// requestRow is the joined shape returned by the list queries. Contact fields
// are carried for every row; the service masks them until approval.
type requestRow struct {
	ID           uuid.UUID
	UserEmail    string
	BiodataID    uuid.UUID
	BiodataNo    int
	Name         string
	Status       string
	ContactEmail string
	PhoneNumber  string
}

// Create inserts a pending contact request. The unique index on
// (user_email, biodata_id) rejects duplicates.
func (r *Repository) Create(ctx context.Context, row *models.ContactRequest) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Exists reports whether the user already has a request for the biodata,
// in any status.
func (r *Repository) Exists(ctx context.Context, userEmail string, biodataID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Where("user_email = ? AND biodata_id = ?", userEmail, biodataID).
		Count(&count).Error
	return count > 0, err
}

// HasApproved reports whether the user holds an approved request for the
// biodata. Feeds the contact-visibility decision on biodata reads.
func (r *Repository) HasApproved(ctx context.Context, userEmail string, biodataID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Where("user_email = ? AND biodata_id = ? AND status = ?", userEmail, biodataID, StatusApproved).
		Count(&count).Error
	return count > 0, err
}

// ListByUserEmail returns the user's requests joined with the target
// biodata's display and contact fields, newest first.
func (r *Repository) ListByUserEmail(ctx context.Context, userEmail string) ([]requestRow, error) {
	var rows []requestRow
	err := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Select("contact_requests.id, contact_requests.user_email, contact_requests.biodata_id, contact_requests.status, biodatas.biodata_no, biodatas.name, biodatas.contact_email, biodatas.phone_number").
		Joins("JOIN biodatas ON biodatas.id = contact_requests.biodata_id").
		Where("contact_requests.user_email = ?", userEmail).
		Order("contact_requests.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ListPending returns all requests awaiting approval, oldest first so admins
// work through the queue in order.
func (r *Repository) ListPending(ctx context.Context) ([]requestRow, error) {
	var rows []requestRow
	err := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Select("contact_requests.id, contact_requests.user_email, contact_requests.biodata_id, contact_requests.status, biodatas.biodata_no, biodatas.name, biodatas.contact_email, biodatas.phone_number").
		Joins("JOIN biodatas ON biodatas.id = contact_requests.biodata_id").
		Where("contact_requests.status = ?", StatusPending).
		Order("contact_requests.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// Approve flips a pending request to approved. Returns the rows affected so
// callers can detect a missing or already-approved request.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusApproved)
	return result.RowsAffected, result.Error
}

// Delete removes a request, scoped to its owner.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, userEmail string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, userEmail).
		Delete(&models.ContactRequest{})
	return result.RowsAffected, result.Error
}

// CountPending returns the number of requests awaiting approval.
func (r *Repository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactRequest{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count, err
}
