package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/peershare/service-sharing/internal/domain"
	commentDomain "github.com/peershare/service-sharing/internal/domain/comment"
	itemDomain "github.com/peershare/service-sharing/internal/domain/item"
	userDomain "github.com/peershare/service-sharing/internal/domain/user"
	"github.com/peershare/service-sharing/internal/events"
)

// RentalHistory answers whether a user has finished an approved rental of
// an item. The booking service satisfies it.
type RentalHistory interface {
	HasFinishedBooking(ctx context.Context, userID, itemID int64) (bool, error)
}

// CreateCommentRequest holds the text of a new review.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentService manages post-rental reviews. Eligibility is gated on a
// completed, approved rental of the item.
type CommentService struct {
	comments commentDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	history  RentalHistory
	producer EventPublisher
	logger   *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments commentDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	history RentalHistory,
	producer EventPublisher,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		items:    items,
		users:    users,
		history:  history,
		producer: producer,
		logger:   logger,
	}
}

// Create leaves a review on an item. The author must have an approved
// booking of the item that has already ended, and owners cannot review
// their own items.
func (s *CommentService) Create(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	itm, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if itm.IsOwnedBy(authorID) {
		return nil, domain.NewUnavailableError("user with id = %d owns item with id = %d and cannot review it", authorID, itemID)
	}

	finished, err := s.history.HasFinishedBooking(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, domain.NewUnavailableError("user with id = %d has no finished booking of item with id = %d", authorID, itemID)
	}

	c, err := commentDomain.New(itemID, authorID, req.Text, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	saved, err := s.comments.Save(ctx, c)
	if err != nil {
		return nil, err
	}

	s.publishCommentAdded(ctx, saved)

	return &CommentDTO{
		ID:         saved.ID,
		Text:       saved.Text,
		AuthorName: author.Name,
		Created:    saved.Created,
	}, nil
}

func (s *CommentService) publishCommentAdded(ctx context.Context, c *commentDomain.Comment) {
	cloudEvent, err := events.NewCloudEvent(eventSource, events.CommentAdded, events.CommentAddedEvent{
		CommentID:  c.ID,
		ItemID:     c.ItemID,
		AuthorID:   c.AuthorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create cloud event", zap.Error(err))
		return
	}
	key := "item-" + strconv.FormatInt(c.ItemID, 10)
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish comment event",
			zap.Int64("comment_id", c.ID),
			zap.Error(err),
		)
	}
}
