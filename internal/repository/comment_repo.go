package repository

import (
	"github.com/inkwell/blog-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment data access interface
type CommentRepository interface {
	// ListByPost returns approved, non-deleted comments for a post,
	// newest first
	ListByPost(postID uint64, page, limit int) ([]*domain.Comment, int64, error)

	// FindByID returns a comment regardless of approval, excluding
	// soft-deleted rows
	FindByID(id uint64) (*domain.Comment, error)

	Create(comment *domain.Comment) error
	Save(comment *domain.Comment) error
	SoftDelete(id uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByPost(postID uint64, page, limit int) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	query := r.db.Model(&domain.Comment{}).
		Where("post_id = ? AND is_deleted = ? AND is_approved = ?", postID, false, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Author").
		Preload("Parent").
		Preload("Parent.Author").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Preload("Author").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Save(comment *domain.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) SoftDelete(id uint64) error {
	result := r.db.Model(&domain.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
