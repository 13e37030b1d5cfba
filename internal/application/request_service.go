package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	requestDomain "github.com/peershare/service-sharing/internal/domain/request"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
)

// CreateItemRequestRequest holds the description of a new wishlist request.
type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

// ItemRequestDTO is the response representation of a wishlist request,
// carrying any items already listed in answer to it.
type ItemRequestDTO struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

// RequestService manages the wishlist: requests for items not yet listed.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		logger:   logger,
	}
}

// Create registers a wishlist request.
func (s *RequestService) Create(ctx context.Context, requestorID int64, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	r, err := requestDomain.New(requestorID, req.Description, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	saved, err := s.requests.Save(ctx, r)
	if err != nil {
		return nil, err
	}
	return &ItemRequestDTO{
		ID:          saved.ID,
		Description: saved.Description,
		Created:     saved.Created,
		Items:       []ItemDTO{},
	}, nil
}

// GetByID retrieves one request with its answering items; any registered
// user may view it.
func (s *RequestService) GetByID(ctx context.Context, viewerID, requestID int64) (*ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.assembleDTOs(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// ListOwn retrieves the user's own requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	list, err := s.requests.FindByRequestorID(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.assembleDTOs(ctx, list)
}

// ListOthers retrieves other users' requests, newest first, paginated.
func (s *RequestService) ListOthers(ctx context.Context, viewerID int64, offset, limit int) ([]ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	list, err := s.requests.FindOthers(ctx, viewerID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.assembleDTOs(ctx, list)
}

// assembleDTOs attaches the answering items to a page of requests with one
// bulk lookup.
func (s *RequestService) assembleDTOs(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	requestIDs := make([]int64, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID
	}
	answering, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]ItemDTO)
	for _, itm := range answering {
		itemsByRequest[itm.RequestID()] = append(itemsByRequest[itm.RequestID()], toItemDTO(itm, nil, nil))
	}

	dtos := make([]ItemRequestDTO, 0, len(requests))
	for _, r := range requests {
		answered := itemsByRequest[r.ID]
		if answered == nil {
			answered = []ItemDTO{}
		}
		dtos = append(dtos, ItemRequestDTO{
			ID:          r.ID,
			Description: r.Description,
			Created:     r.Created,
			Items:       answered,
		})
	}
	return dtos, nil
}
