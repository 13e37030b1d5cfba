package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	bookingDomain "github.com/peershare/service-sharing/internal/domain/booking"
	commentDomain "github.com/peershare/service-sharing/internal/domain/comment"
	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	requestDomain "github.com/peershare/service-sharing/internal/domain/request"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
	"github.com/peershare/service-sharing/internal/events"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Save(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, b *bookingDomain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByBookerID(ctx context.Context, bookerID int64, statuses []bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, bookerID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByItemIDs(ctx context.Context, itemIDs []int64, statuses []bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemIDs, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Save(ctx context.Context, i *itemDomain.Item) (*itemDomain.Item, error) {
	args := m.Called(ctx, i)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, i *itemDomain.Item) error {
	return m.Called(ctx, i).Error(0)
}

func (m *mockItemRepo) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByIDs(ctx context.Context, ids []int64) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByOwnerID(ctx context.Context, ownerID int64) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, requestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) Search(ctx context.Context, text string) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Save(ctx context.Context, u *userDomain.User) (*userDomain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []int64) ([]*userDomain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*userDomain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentDomain.Comment), args.Error(1)
}

func (m *mockCommentRepo) FindByItemID(ctx context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentDomain.Comment), args.Error(1)
}

func (m *mockCommentRepo) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*commentDomain.Comment, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentDomain.Comment), args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) Save(ctx context.Context, r *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requestDomain.ItemRequest), args.Error(1)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requestDomain.ItemRequest), args.Error(1)
}

func (m *mockRequestRepo) FindByRequestorID(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*requestDomain.ItemRequest), args.Error(1)
}

func (m *mockRequestRepo) FindOthers(ctx context.Context, requestorID int64, offset, limit int) ([]*requestDomain.ItemRequest, error) {
	args := m.Called(ctx, requestorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*requestDomain.ItemRequest), args.Error(1)
}

type mockProjector struct{ mock.Mock }

func (m *mockProjector) ProjectionsForItems(ctx context.Context, itemIDs []int64) (map[int64]bookingDomain.ItemProjection, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bookingDomain.ItemProjection), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error {
	return m.Called(ctx, topic, key, event).Error(0)
}

// noopPublisher drops every event; tests that do not assert on publishing
// use it to keep expectations quiet.
type noopPublisher struct{}

func (noopPublisher) PublishEvent(context.Context, string, string, events.CloudEvent) error {
	return nil
}
