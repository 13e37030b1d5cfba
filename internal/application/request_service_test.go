package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peershare/service-sharing/internal/domain"
	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	requestDomain "github.com/peershare/service-sharing/internal/domain/request"
)

func newRequestFixture() (*RequestService, *mockRequestRepo, *mockItemRepo, *mockUserRepo) {
	requests := &mockRequestRepo{}
	items := &mockItemRepo{}
	users := &mockUserRepo{}
	svc := NewRequestService(requests, items, users, zap.NewNop())
	return svc, requests, items, users
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc, requests, _, users := newRequestFixture()

		users.On("FindByID", ctx, bookerID).Return(booker(), nil)
		requests.On("Save", ctx, mock.Anything).
			Return(&requestDomain.ItemRequest{ID: 1, RequestorID: bookerID, Description: "need a drill", Created: time.Now().UTC()}, nil)

		dto, err := svc.Create(ctx, bookerID, CreateItemRequestRequest{Description: "need a drill"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), dto.ID)
		assert.Empty(t, dto.Items)
	})

	t.Run("empty description", func(t *testing.T) {
		svc, requests, _, users := newRequestFixture()
		users.On("FindByID", ctx, bookerID).Return(booker(), nil)

		_, err := svc.Create(ctx, bookerID, CreateItemRequestRequest{})

		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
		requests.AssertNotCalled(t, "Save")
	})
}

func TestRequestService_ListOwn_AttachesAnsweringItems(t *testing.T) {
	ctx := context.Background()
	svc, requests, items, users := newRequestFixture()
	now := time.Now().UTC()

	users.On("FindByID", ctx, bookerID).Return(booker(), nil)
	requests.On("FindByRequestorID", ctx, bookerID).
		Return([]*requestDomain.ItemRequest{
			{ID: 1, RequestorID: bookerID, Description: "need a drill", Created: now},
			{ID: 2, RequestorID: bookerID, Description: "need a tent", Created: now},
		}, nil)
	items.On("FindByRequestIDs", ctx, []int64{1, 2}).
		Return([]*itemDomain.Item{
			itemDomain.Reconstruct(7, ownerID, "Drill", "answers request 1", true, 1),
		}, nil)

	dtos, err := svc.ListOwn(ctx, bookerID)

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	require.Len(t, dtos[0].Items, 1)
	assert.Equal(t, int64(7), dtos[0].Items[0].ID)
	assert.Empty(t, dtos[1].Items)
}

func TestRequestService_ListOthers(t *testing.T) {
	ctx := context.Background()
	svc, requests, items, users := newRequestFixture()

	users.On("FindByID", ctx, bookerID).Return(booker(), nil)
	requests.On("FindOthers", ctx, bookerID, 0, 10).
		Return([]*requestDomain.ItemRequest{
			{ID: 3, RequestorID: 5, Description: "need a kayak", Created: time.Now().UTC()},
		}, nil)
	items.On("FindByRequestIDs", ctx, []int64{3}).Return([]*itemDomain.Item{}, nil)

	dtos, err := svc.ListOthers(ctx, bookerID, 0, 10)

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "need a kayak", dtos[0].Description)
}

func TestRequestService_GetByID_RequiresViewer(t *testing.T) {
	ctx := context.Background()
	svc, requests, _, users := newRequestFixture()

	users.On("FindByID", ctx, int64(99)).Return(nil, domain.NewNotFoundError("user", 99))

	_, err := svc.GetByID(ctx, 99, 1)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	requests.AssertNotCalled(t, "FindByID")
}
