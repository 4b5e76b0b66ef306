package repository

import (
	"context"
	"errors"

	"github.com/bcexpress/tracking-api/internal/models"

	"gorm.io/gorm"
)

// ShipmentHistoryRepository is the history data access interface.
type ShipmentHistoryRepository interface {
	Append(ctx context.Context, entry *models.ShipmentHistory) error
	ExistsForStatus(ctx context.Context, awbNumber, status string) (bool, error)
	ListByAWB(ctx context.Context, awbNumber string) ([]models.ShipmentHistory, error)
	WithTx(tx *gorm.DB) *GormShipmentHistoryRepository
}

// ErrHistoryDuplicate marks an insert that collided with an existing
// row for the same AWB and status.
var ErrHistoryDuplicate = errors.New("shipment history entry already exists")

// GormShipmentHistoryRepository is the GORM implementation.
type GormShipmentHistoryRepository struct {
	db *gorm.DB
}

// NewShipmentHistoryRepository builds a history repository.
func NewShipmentHistoryRepository(db *gorm.DB) *GormShipmentHistoryRepository {
	return &GormShipmentHistoryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormShipmentHistoryRepository) WithTx(tx *gorm.DB) *GormShipmentHistoryRepository {
	if tx == nil {
		return r
	}
	return &GormShipmentHistoryRepository{db: tx}
}

// Append inserts an audit row. A duplicate for the same AWB and
// status returns ErrHistoryDuplicate so callers can tolerate it.
func (r *GormShipmentHistoryRepository) Append(ctx context.Context, entry *models.ShipmentHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrHistoryDuplicate
		}
		return err
	}
	return nil
}

// ExistsForStatus reports whether a row for (awb, status) is present.
func (r *GormShipmentHistoryRepository) ExistsForStatus(ctx context.Context, awbNumber, status string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ShipmentHistory{}).
		Where("awb_number = ? AND status = ?", awbNumber, status).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByAWB returns the audit trail ordered oldest first.
func (r *GormShipmentHistoryRepository) ListByAWB(ctx context.Context, awbNumber string) ([]models.ShipmentHistory, error) {
	var entries []models.ShipmentHistory
	if err := r.db.WithContext(ctx).
		Where("awb_number = ?", awbNumber).
		Order("created_at asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
