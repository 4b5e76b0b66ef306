package repository

import (
	"context"
	"errors"

	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"

	"gorm.io/gorm"
)

// BookingRepository is the agent booking data access interface.
type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	GetPendingByAWB(ctx context.Context, awbNo string) (*models.Booking, error)
	List(ctx context.Context, filter BookingListFilter) ([]models.Booking, int64, error)
	ResolvePending(ctx context.Context, id uint, updates map[string]interface{}) (int64, error)
	Create(ctx context.Context, booking *models.Booking) error
	WithTx(tx *gorm.DB) *GormBookingRepository
}

// GormBookingRepository is the GORM implementation.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository builds a booking repository.
func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBookingRepository) WithTx(tx *gorm.DB) *GormBookingRepository {
	if tx == nil {
		return r
	}
	return &GormBookingRepository{db: tx}
}

// GetByID fetches a booking, nil when absent.
func (r *GormBookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// GetPendingByAWB fetches the pending booking for an AWB, nil when absent.
func (r *GormBookingRepository) GetPendingByAWB(ctx context.Context, awbNo string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Where("awb_no = ? AND status = ?", awbNo, constants.BookingStatusPending).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// List returns bookings matching the filter.
func (r *GormBookingRepository) List(ctx context.Context, filter BookingListFilter) ([]models.Booking, int64, error) {
	var bookings []models.Booking
	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AWBNo != "" {
		query = query.Where("awb_no = ?", filter.AWBNo)
	}
	if filter.OriginBranch != "" {
		query = query.Where("origin_branch = ?", filter.OriginBranch)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at asc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ResolvePending applies a terminal update conditional on the booking
// still being pending. The affected row count tells the caller whether
// it won the transition.
func (r *GormBookingRepository) ResolvePending(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, constants.BookingStatusPending).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Create inserts a booking.
func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}
