package service

import (
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/repository"
)

// CommentService business logic for comments
type CommentService interface {
	ListByPost(postID uint64, page, limit int) ([]*domain.CommentResponse, *common.Meta, error)
	Create(authorID string, postID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error)
	Update(viewer domain.Principal, id uint64, req *domain.UpdateCommentRequest) (*domain.CommentResponse, error)
	Delete(viewer domain.Principal, id uint64) error
	SetApproval(id uint64, approved bool) (*domain.CommentResponse, error)
}

type commentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
	pageSize int
	maxPage  int
}

// NewCommentService creates a new CommentService
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository, pageSize, maxPageSize int) CommentService {
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
		pageSize: pageSize,
		maxPage:  maxPageSize,
	}
}

// ListByPost retrieves the visible comments of a post: approved and not
// deleted, newest first. Unapproved comments still exist but never appear here.
func (s *commentService) ListByPost(postID uint64, page, limit int) ([]*domain.CommentResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > s.maxPage {
		limit = s.pageSize
	}

	comments, total, err := s.repo.ListByPost(postID, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = comment.ToResponse()
	}
	return responses, common.NewMeta(page, limit, len(responses), total), nil
}

// Create adds a comment to a published post. Draft posts reject comments, and
// a threaded reply must point at a comment on the same post.
func (s *commentService) Create(authorID string, postID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, common.ErrPostNotFound
	}
	if post.Status != domain.StatusPublished {
		return nil, common.ErrPostNotPublished
	}

	if req.ParentCommentID != nil {
		parent, err := s.repo.FindByID(*req.ParentCommentID)
		if err != nil {
			return nil, common.ErrCommentNotFound
		}
		if parent.PostID != postID {
			return nil, common.ErrInvalidParent
		}
	}

	comment := &domain.Comment{
		Content:         req.Content,
		AuthorID:        authorID,
		PostID:          postID,
		ParentCommentID: req.ParentCommentID,
		IsApproved:      true,
	}

	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with the author preloaded for the response
	fresh, err := s.repo.FindByID(comment.ID)
	if err != nil {
		return comment.ToResponse(), nil
	}
	return fresh.ToResponse(), nil
}

// Update edits a comment's content; owner or admin only
func (s *commentService) Update(viewer domain.Principal, id uint64, req *domain.UpdateCommentRequest) (*domain.CommentResponse, error) {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrCommentNotFound
	}

	if !domain.CanModify(comment, viewer) {
		return nil, common.ErrForbidden
	}

	comment.Content = req.Content
	if err := s.repo.Save(comment); err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}

// Delete soft-deletes a comment; owner or admin only
func (s *commentService) Delete(viewer domain.Principal, id uint64) error {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return common.ErrCommentNotFound
	}

	if !domain.CanModify(comment, viewer) {
		return common.ErrForbidden
	}

	return s.repo.SoftDelete(id)
}

// SetApproval flips the moderation flag. Rejected comments vanish from
// listings but are not deleted; the admin gate lives at the route level.
func (s *commentService) SetApproval(id uint64, approved bool) (*domain.CommentResponse, error) {
	comment, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrCommentNotFound
	}

	comment.IsApproved = approved
	if err := s.repo.Save(comment); err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}
