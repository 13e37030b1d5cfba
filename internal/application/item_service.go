package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-sharing/internal/domain"
	bookingDomain "github.com/peershare/service-sharing/internal/domain/booking"
	commentDomain "github.com/peershare/service-sharing/internal/domain/comment"
	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	requestDomain "github.com/peershare/service-sharing/internal/domain/request"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
)

// BookingProjector supplies the last/next booking view for items. The
// booking service satisfies it.
type BookingProjector interface {
	ProjectionsForItems(ctx context.Context, itemIDs []int64) (map[int64]bookingDomain.ItemProjection, error)
}

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"requestId"`
}

// UpdateItemRequest holds a partial item update. Absent fields keep their
// current values.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CommentDTO is the response representation of a review.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. Last and Next are
// filled only for the item's owner.
type ItemDTO struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Available   bool                   `json:"available"`
	RequestID   int64                  `json:"requestId,omitempty"`
	Last        *bookingDomain.Summary `json:"lastBooking,omitempty"`
	Next        *bookingDomain.Summary `json:"nextBooking,omitempty"`
	Comments    []CommentDTO           `json:"comments"`
}

// ItemService orchestrates the item catalog: listings, updates, search and
// the owner's booking-enriched views.
type ItemService struct {
	items     itemDomain.Repository
	users     userDomain.Repository
	comments  commentDomain.Repository
	requests  requestDomain.Repository
	projector BookingProjector
	logger    *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	comments commentDomain.Repository,
	requests requestDomain.Repository,
	projector BookingProjector,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:     items,
		users:     users,
		comments:  comments,
		requests:  requests,
		projector: projector,
		logger:    logger,
	}
}

// Create lists a new item on behalf of its owner.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if req.Available == nil {
		return nil, domain.NewValidationError("item availability is required")
	}
	if req.RequestID != 0 {
		if _, err := s.requests.FindByID(ctx, req.RequestID); err != nil {
			return nil, err
		}
	}
	itm, err := itemDomain.New(ownerID, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		return nil, err
	}
	saved, err := s.items.Save(ctx, itm)
	if err != nil {
		return nil, err
	}
	dto := toItemDTO(saved, nil, nil)
	return &dto, nil
}

// Update applies a partial update; only the owner may update an item.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !itm.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundErrorf("item", "item with id = %d does not belong to user with id = %d", itemID, ownerID)
	}
	itm.Update(req.Name, req.Description, req.Available)
	if err := s.items.Update(ctx, itm); err != nil {
		return nil, err
	}
	dto := toItemDTO(itm, nil, nil)
	return &dto, nil
}

// GetByID retrieves one item with its comments. The booking projection is
// attached only when the viewer owns the item.
func (s *ItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*ItemDTO, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var projection *bookingDomain.ItemProjection
	if itm.IsOwnedBy(viewerID) {
		projections, err := s.projector.ProjectionsForItems(ctx, []int64{itemID})
		if err != nil {
			return nil, err
		}
		if p, ok := projections[itemID]; ok {
			projection = &p
		}
	}

	commentList, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	commentDTOs, err := s.assembleComments(ctx, commentList)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(itm, projection, commentDTOs)
	return &dto, nil
}

// ListByOwner retrieves all of a user's items with booking projections and
// comments attached, using one bulk fetch per concern.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemDTO, error) {
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

	projections, err := s.projector.ProjectionsForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentList, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentDTOs, err := s.assembleComments(ctx, commentList)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]CommentDTO)
	for i, c := range commentList {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], commentDTOs[i])
	}

	dtos := make([]ItemDTO, 0, len(ownedItems))
	for _, itm := range ownedItems {
		var projection *bookingDomain.ItemProjection
		if p, ok := projections[itm.ID()]; ok {
			projection = &p
		}
		dtos = append(dtos, toItemDTO(itm, projection, commentsByItem[itm.ID()]))
	}
	return dtos, nil
}

// Search finds available items whose name or description contains the text,
// case-insensitively. A blank query returns an empty list.
func (s *ItemService) Search(ctx context.Context, text string) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}
	found, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	dtos := make([]ItemDTO, 0, len(found))
	for _, itm := range found {
		dtos = append(dtos, toItemDTO(itm, nil, nil))
	}
	return dtos, nil
}

// Delete removes an item; only the owner may delete it.
func (s *ItemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !itm.IsOwnedBy(ownerID) {
		return domain.NewNotFoundErrorf("item", "item with id = %d does not belong to user with id = %d", itemID, ownerID)
	}
	return s.items.Delete(ctx, itemID)
}

func (s *ItemService) assembleComments(ctx context.Context, comments []*commentDomain.Comment) ([]CommentDTO, error) {
	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[int64]string, len(authors))
	for _, u := range authors {
		namesByID[u.ID] = u.Name
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, CommentDTO{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: namesByID[c.AuthorID],
			Created:    c.Created,
		})
	}
	return dtos, nil
}

func toItemDTO(itm *itemDomain.Item, projection *bookingDomain.ItemProjection, comments []CommentDTO) ItemDTO {
	dto := ItemDTO{
		ID:          itm.ID(),
		Name:        itm.Name(),
		Description: itm.Description(),
		Available:   itm.Available(),
		RequestID:   itm.RequestID(),
		Comments:    comments,
	}
	if dto.Comments == nil {
		dto.Comments = []CommentDTO{}
	}
	if projection != nil {
		dto.Last = projection.Last
		dto.Next = projection.Next
	}
	return dto
}
