package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/peershare/service-sharing/internal/domain"
	bookingDomain "github.com/peershare/service-sharing/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `gorm:"index;not null"`
	BookerID  int64     `gorm:"index;not null"`
	Status    string    `gorm:"not null;size:20;index"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking inside a transaction. The schema carries an
// exclusion constraint on (item_id, [start,end)) for WAITING/APPROVED rows,
// so an overlap that slips past the service-level check still cannot
// commit; the violation surfaces as the same interval-conflict error.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		if isIntervalConstraintViolation(err) {
			return nil, domain.NewIncorrectTimeError("booking interval conflicts with an existing booking of item %d", b.ItemID())
		}
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return toDomainBooking(model), nil
}

// Update persists a status change to an existing booking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", b.ID()).
		Updates(map[string]interface{}{
			"status":     string(b.Status()),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", b.ID())
	}
	return nil
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByBookerID retrieves a booker's bookings, optionally narrowed to a
// status subset.
func (r *GormBookingRepository) FindByBookerID(ctx context.Context, bookerID int64, statuses []bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Where("booker_id = ?", bookerID)
	query = withStatusFilter(query, statuses)

	var models []BookingModel
	if err := query.Order("start_date DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByItemIDs retrieves the bookings of a set of items, optionally
// narrowed to a status subset.
func (r *GormBookingRepository) FindByItemIDs(ctx context.Context, itemIDs []int64, statuses []bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return []*bookingDomain.Booking{}, nil
	}
	query := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs)
	query = withStatusFilter(query, statuses)

	var models []BookingModel
	if err := query.Order("start_date DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by items: %w", err)
	}
	return toDomainBookings(models), nil
}

func withStatusFilter(query *gorm.DB, statuses []bookingDomain.Status) *gorm.DB {
	if len(statuses) == 0 {
		return query
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return query.Where("status IN ?", values)
}

// isIntervalConstraintViolation recognizes the Postgres exclusion
// constraint on booking intervals (class 23, exclusion_violation).
func isIntervalConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	now := time.Now().UTC()
	return &BookingModel{
		ID:        b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		Status:    string(b.Status()),
		StartDate: b.Start(),
		EndDate:   b.End(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID,
		m.ItemID,
		m.BookerID,
		bookingDomain.Status(m.Status),
		m.StartDate,
		m.EndDate,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
