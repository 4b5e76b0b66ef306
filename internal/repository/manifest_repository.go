package repository

import (
	"context"
	"errors"

	"github.com/bcexpress/tracking-api/internal/models"

	"gorm.io/gorm"
)

// ManifestRepository reads the central manifest and writes branch
// manifest entries.
type ManifestRepository interface {
	FindCentralByAWB(ctx context.Context, awbNo string) (*models.ManifestEntry, error)
	FindBranchByAWB(ctx context.Context, awbNo string) (*models.BranchManifestEntry, error)
	CreateBranchEntry(ctx context.Context, entry *models.BranchManifestEntry) error
	WithTx(tx *gorm.DB) *GormManifestRepository
}

// GormManifestRepository is the GORM implementation.
type GormManifestRepository struct {
	db *gorm.DB
}

// NewManifestRepository builds a manifest repository.
func NewManifestRepository(db *gorm.DB) *GormManifestRepository {
	return &GormManifestRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormManifestRepository) WithTx(tx *gorm.DB) *GormManifestRepository {
	if tx == nil {
		return r
	}
	return &GormManifestRepository{db: tx}
}

// FindCentralByAWB fetches a central manifest row, nil when absent.
func (r *GormManifestRepository) FindCentralByAWB(ctx context.Context, awbNo string) (*models.ManifestEntry, error) {
	var entry models.ManifestEntry
	if err := r.db.WithContext(ctx).Where("awb_no = ?", awbNo).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// FindBranchByAWB fetches a branch manifest row, nil when absent.
func (r *GormManifestRepository) FindBranchByAWB(ctx context.Context, awbNo string) (*models.BranchManifestEntry, error) {
	var entry models.BranchManifestEntry
	if err := r.db.WithContext(ctx).Where("awb_no = ?", awbNo).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// CreateBranchEntry inserts a branch manifest row.
func (r *GormManifestRepository) CreateBranchEntry(ctx context.Context, entry *models.BranchManifestEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
