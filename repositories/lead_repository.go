package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gloucester-auto/dealership-api/models"
)

// LeadRepository owns the leads table. Leads own nothing, so deletes never
// cascade.
type LeadRepository interface {
	List(ctx context.Context) ([]models.Lead, error)
	ListByStatus(ctx context.Context, status string) ([]models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Lead, error)
	Delete(ctx context.Context, id uint) error
}

type gormLeadRepository struct {
	db *gorm.DB
}

var leadRepositoryInstance LeadRepository

// InitLeadRepository initializes the lead repository singleton.
func InitLeadRepository(db *gorm.DB) LeadRepository {
	leadRepositoryInstance = NewLeadRepository(db)
	return leadRepositoryInstance
}

// GetLeadRepository returns the initialized lead repository instance
func GetLeadRepository() LeadRepository {
	return leadRepositoryInstance
}

// SetLeadRepository sets the lead repository instance (primarily for testing)
func SetLeadRepository(r LeadRepository) {
	leadRepositoryInstance = r
}

// NewLeadRepository creates a lead repository on the given database.
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &gormLeadRepository{db: db}
}

// List returns all leads, newest first.
func (r *gormLeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead
	if err := newestFirst(r.db.WithContext(ctx)).Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// ListByStatus returns leads with the given status, newest first.
func (r *gormLeadRepository) ListByStatus(ctx context.Context, status string) ([]models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Invalid status. Must be: %s", strings.Join(models.LeadStatuses(), ", ")),
		}
	}

	var leads []models.Lead
	if err := newestFirst(r.db.WithContext(ctx).Where("status = ?", status)).Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// Create inserts a lead from a public form submission. Status is always
// forced to "new" no matter what the caller supplied.
func (r *gormLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if strings.TrimSpace(lead.FirstName) == "" || strings.TrimSpace(lead.Phone) == "" {
		return &ValidationError{Message: "First name and phone are required"}
	}

	lead.Status = models.LeadStatusNew

	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// UpdateStatus moves a lead through its lifecycle. Values outside the closed
// set are rejected before any write.
func (r *gormLeadRepository) UpdateStatus(ctx context.Context, id uint, status string) (*models.Lead, error) {
	if !models.IsValidLeadStatus(status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Invalid status. Must be: %s", strings.Join(models.LeadStatuses(), ", ")),
		}
	}

	db := r.db.WithContext(ctx)

	var lead models.Lead
	if err := db.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to load lead: %w", err)
	}

	updates := map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if err := db.Model(&lead).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	if err := db.First(&lead, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}
	return &lead, nil
}

// Delete removes a lead row.
func (r *gormLeadRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Lead{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lead: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}
