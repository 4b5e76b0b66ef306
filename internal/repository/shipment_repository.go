package repository

import (
	"context"
	"errors"

	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShipmentRepository is the shipment data access interface.
type ShipmentRepository interface {
	GetByAWB(ctx context.Context, awbNumber string) (*models.Shipment, error)
	Upsert(ctx context.Context, shipment *models.Shipment) error
	UpdateStatus(ctx context.Context, awbNumber, status string, updates map[string]interface{}) error
	ReassignCourier(ctx context.Context, awbNumber string, courierID uint) (int64, error)
	List(ctx context.Context, filter ShipmentListFilter) ([]models.Shipment, int64, error)
	WithTx(tx *gorm.DB) *GormShipmentRepository
}

// GormShipmentRepository is the GORM implementation.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository builds a shipment repository.
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormShipmentRepository) WithTx(tx *gorm.DB) *GormShipmentRepository {
	if tx == nil {
		return r
	}
	return &GormShipmentRepository{db: tx}
}

// GetByAWB fetches a shipment by AWB number, nil when absent.
func (r *GormShipmentRepository) GetByAWB(ctx context.Context, awbNumber string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.WithContext(ctx).Where("awb_number = ?", awbNumber).First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// Upsert creates the shipment or refreshes its detail columns when a
// row for the AWB already exists.
func (r *GormShipmentRepository) Upsert(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "awb_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sender_name",
			"sender_address",
			"sender_phone",
			"receiver_name",
			"receiver_address",
			"receiver_phone",
			"weight",
			"dimensions",
			"service_type",
			"updated_at",
		}),
	}).Create(shipment).Error
}

// UpdateStatus sets the current status plus any extra columns.
func (r *GormShipmentRepository) UpdateStatus(ctx context.Context, awbNumber, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["current_status"] = status
	return r.db.WithContext(ctx).Model(&models.Shipment{}).
		Where("awb_number = ?", awbNumber).
		Updates(updates).Error
}

// ReassignCourier hands the shipment to another courier, conditional
// on it still being out for delivery. The affected row count tells the
// caller whether it won the handoff.
func (r *GormShipmentRepository) ReassignCourier(ctx context.Context, awbNumber string, courierID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Shipment{}).
		Where("awb_number = ? AND current_status = ?", awbNumber, constants.ShipmentStatusOutForDelivery).
		Updates(map[string]interface{}{"courier_id": courierID})
	return result.RowsAffected, result.Error
}

// List returns shipments matching the filter.
func (r *GormShipmentRepository) List(ctx context.Context, filter ShipmentListFilter) ([]models.Shipment, int64, error) {
	var shipments []models.Shipment
	query := r.db.WithContext(ctx).Model(&models.Shipment{})

	if filter.Status != "" {
		query = query.Where("current_status = ?", filter.Status)
	}
	if filter.CourierID != 0 {
		query = query.Where("courier_id = ?", filter.CourierID)
	}
	if filter.Search != "" {
		condition, argCount := buildSearchLikeCondition(r.db, []string{"awb_number", "sender_name", "receiver_name"})
		if argCount > 0 {
			query = query.Where(condition, repeatLikeArgs("%"+filter.Search+"%", argCount)...)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&shipments).Error; err != nil {
		return nil, 0, err
	}
	return shipments, total, nil
}
