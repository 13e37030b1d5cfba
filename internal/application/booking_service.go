// Package application holds the use-case services sitting between the HTTP
// handlers and the domain/repository layers.
package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-sharing/internal/domain"
	bookingDomain "github.com/peershare/service-sharing/internal/domain/booking"
	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
	"github.com/peershare/service-sharing/internal/events"
)

const eventSource = "service-sharing"

// EventPublisher publishes lifecycle events. *events.Producer satisfies it;
// tests substitute their own.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// ItemShortDTO is the item reference nested in booking responses.
type ItemShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserShortDTO is the user reference nested in booking responses.
type UserShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     int64        `json:"id"`
	Status string       `json:"status"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Item   ItemShortDTO `json:"item"`
	Booker UserShortDTO `json:"booker"`
}

// BookingService orchestrates the booking lifecycle: creation with conflict
// detection, owner decisions, detail access and the state-bucketed listings.
type BookingService struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// Create places a booking request for an item. The check order is part of
// the API contract: interval validity, item existence, booker existence,
// owner-books-own-item, interval conflict, availability.
func (s *BookingService) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	now := time.Now().UTC()
	if err := bookingDomain.ValidateInterval(req.Start, req.End, now); err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if itm.IsOwnedBy(bookerID) {
		return nil, domain.NewNotFoundErrorf("item", "user with id = %d is the owner of item with id = %d", bookerID, req.ItemID)
	}

	blocking, err := s.bookings.FindByItemIDs(ctx, []int64{req.ItemID}, bookingDomain.BlockingStatuses())
	if err != nil {
		return nil, err
	}
	if bookingDomain.ConflictsWith(req.Start, req.End, blocking) {
		return nil, domain.NewIncorrectTimeError("booking interval conflicts with an existing booking of item %d", req.ItemID)
	}

	if !itm.Available() {
		return nil, domain.NewUnavailableError("item with id = %d is not available", req.ItemID)
	}

	b, err := bookingDomain.New(req.ItemID, bookerID, req.Start, req.End, now)
	if err != nil {
		return nil, err
	}
	saved, err := s.bookings.Save(ctx, b)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BookingRequested, saved.ID(), events.BookingRequestedEvent{
		BookingID:  saved.ID(),
		ItemID:     saved.ItemID(),
		BookerID:   saved.BookerID(),
		Start:      saved.Start(),
		End:        saved.End(),
		OccurredAt: time.Now().UTC(),
	})

	dto := toBookingDTO(saved, itm, booker)
	return &dto, nil
}

// Decide applies the owner's approval or rejection of a booking. Only the
// item's owner may decide; anyone else gets not-found rather than a hint
// that the booking exists.
func (s *BookingService) Decide(ctx context.Context, actingUserID, bookingID int64, approved bool) (*BookingDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := b.EnsureDecidable(now); err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(actingUserID) {
		return nil, domain.NewNotFoundErrorf("booking", "item with id = %d does not belong to user with id = %d", itm.ID(), actingUserID)
	}
	if err := b.Decide(approved, now); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	eventType := events.BookingApproved
	if !approved {
		eventType = events.BookingRejected
	}
	s.publishEvent(ctx, eventType, b.ID(), events.BookingDecidedEvent{
		BookingID:  b.ID(),
		ItemID:     itm.ID(),
		OwnerID:    actingUserID,
		Status:     b.Status().String(),
		OccurredAt: time.Now().UTC(),
	})

	booker, err := s.users.FindByID(ctx, b.BookerID())
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b, itm, booker)
	return &dto, nil
}

// GetByID retrieves one booking for its booker or the item's owner; anyone
// else gets not-found.
func (s *BookingService) GetByID(ctx context.Context, bookingID, viewerID int64) (*BookingDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	itm, err := s.items.FindByID(ctx, b.ItemID())
	if err != nil {
		return nil, err
	}
	if !b.IsBookedBy(viewerID) && !itm.IsOwnedBy(viewerID) {
		return nil, domain.NewNotFoundErrorf("booking", "booking with id = %d does not belong to user with id = %d", bookingID, viewerID)
	}
	booker, err := s.users.FindByID(ctx, b.BookerID())
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b, itm, booker)
	return &dto, nil
}

// ListByBooker lists the bookings a user has made, bucketed by state,
// sorted by start descending and paginated after filtering.
func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state bookingDomain.State, page, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}
	fetched, err := s.bookings.FindByBookerID(ctx, bookerID, state.Statuses())
	if err != nil {
		return nil, err
	}
	bucketed := bookingDomain.Bucket(fetched, state, time.Now().UTC(), page*size, size)
	return s.assembleDTOs(ctx, bucketed)
}

// ListByOwner lists the bookings placed on any item the user owns, with the
// same bucketing as ListByBooker.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state bookingDomain.State, page, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	ownedItems, err := s.items.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	itemIDs := make([]int64, len(ownedItems))
	for i, itm := range ownedItems {
		itemIDs[i] = itm.ID()
	}
	fetched, err := s.bookings.FindByItemIDs(ctx, itemIDs, state.Statuses())
	if err != nil {
		return nil, err
	}
	bucketed := bookingDomain.Bucket(fetched, state, time.Now().UTC(), page*size, size)
	return s.assembleDTOs(ctx, bucketed)
}

// ProjectionsForItems computes the last/next booking view for a set of
// items with a single bulk fetch.
func (s *BookingService) ProjectionsForItems(ctx context.Context, itemIDs []int64) (map[int64]bookingDomain.ItemProjection, error) {
	fetched, err := s.bookings.FindByItemIDs(ctx, itemIDs, bookingDomain.BlockingStatuses())
	if err != nil {
		return nil, err
	}
	return bookingDomain.ProjectForItems(fetched, time.Now().UTC()), nil
}

// HasFinishedBooking reports whether the user has an approved booking of
// the item whose interval has already ended. The comment subsystem gates
// review eligibility on this.
func (s *BookingService) HasFinishedBooking(ctx context.Context, userID, itemID int64) (bool, error) {
	fetched, err := s.bookings.FindByBookerID(ctx, userID, []bookingDomain.Status{bookingDomain.StatusApproved})
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	for _, b := range fetched {
		if b.FinishedApprovedBy(userID, itemID, now) {
			return true, nil
		}
	}
	return false, nil
}

// CancelBooking applies a cancellation coming from the external
// cancellation flow. Only the booker may cancel their own booking.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, canceledBy int64) error {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.IsBookedBy(canceledBy) {
		return domain.NewNotFoundErrorf("booking", "booking with id = %d does not belong to user with id = %d", bookingID, canceledBy)
	}
	if err := b.Cancel(); err != nil {
		return err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return err
	}

	s.publishEvent(ctx, events.BookingCanceled, b.ID(), events.BookingCanceledEvent{
		BookingID:  b.ID(),
		CanceledBy: canceledBy,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// --- Helpers ---

// assembleDTOs resolves item and booker references for a page of bookings
// with one batch lookup each.
func (s *BookingService) assembleDTOs(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemIDs := make([]int64, 0, len(bookings))
	userIDs := make([]int64, 0, len(bookings))
	seenItems := make(map[int64]bool)
	seenUsers := make(map[int64]bool)
	for _, b := range bookings {
		if !seenItems[b.ItemID()] {
			seenItems[b.ItemID()] = true
			itemIDs = append(itemIDs, b.ItemID())
		}
		if !seenUsers[b.BookerID()] {
			seenUsers[b.BookerID()] = true
			userIDs = append(userIDs, b.BookerID())
		}
	}

	itemList, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	userList, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[int64]*itemDomain.Item, len(itemList))
	for _, itm := range itemList {
		itemsByID[itm.ID()] = itm
	}
	usersByID := make(map[int64]*userDomain.User, len(userList))
	for _, u := range userList {
		usersByID[u.ID] = u
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dto := BookingDTO{
			ID:     b.ID(),
			Status: b.Status().String(),
			Start:  b.Start(),
			End:    b.End(),
		}
		if itm, ok := itemsByID[b.ItemID()]; ok {
			dto.Item = ItemShortDTO{ID: itm.ID(), Name: itm.Name()}
		}
		if u, ok := usersByID[b.BookerID()]; ok {
			dto.Booker = UserShortDTO{ID: u.ID, Name: u.Name}
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func toBookingDTO(b *bookingDomain.Booking, itm *itemDomain.Item, booker *userDomain.User) BookingDTO {
	return BookingDTO{
		ID:     b.ID(),
		Status: b.Status().String(),
		Start:  b.Start(),
		End:    b.End(),
		Item:   ItemShortDTO{ID: itm.ID(), Name: itm.Name()},
		Booker: UserShortDTO{ID: booker.ID, Name: booker.Name},
	}
}

func keyForBooking(bookingID int64) string {
	return "booking-" + strconv.FormatInt(bookingID, 10)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, bookingID int64, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	key := keyForBooking(bookingID)
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Int64("booking_id", bookingID),
			zap.Error(err),
		)
	}
}
