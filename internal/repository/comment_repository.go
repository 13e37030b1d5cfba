package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	commentDomain "github.com/peershare/service-sharing/internal/domain/comment"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ItemID   int64  `gorm:"index;not null"`
	AuthorID int64  `gorm:"index;not null"`
	Text     string `gorm:"not null;size:2000"`
	Created  time.Time
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of the comment
// Repository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	model := &CommentModel{
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Text:     c.Text,
		Created:  c.Created,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return toDomainComment(model), nil
}

// FindByItemID retrieves all comments on one item.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Order("created ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}
	return toDomainComments(models), nil
}

// FindByItemIDs retrieves all comments on a set of items.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*commentDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return []*commentDomain.Comment{}, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).Where("item_id IN ?", itemIDs).Order("created ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by items: %w", err)
	}
	return toDomainComments(models), nil
}

func toDomainComment(m *CommentModel) *commentDomain.Comment {
	return &commentDomain.Comment{
		ID:       m.ID,
		ItemID:   m.ItemID,
		AuthorID: m.AuthorID,
		Text:     m.Text,
		Created:  m.Created,
	}
}

func toDomainComments(models []CommentModel) []*commentDomain.Comment {
	comments := make([]*commentDomain.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments
}
