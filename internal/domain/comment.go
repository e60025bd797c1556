package domain

import "time"

// Comment domain model (comments table).
// Threading is a single optional parent reference; listings resolve one level
// of parent lookup only. A comment is listed only when it is both approved and
// not soft-deleted.
type Comment struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Content         string    `gorm:"type:varchar(1000);not null" json:"content"`
	AuthorID        string    `gorm:"type:char(36);not null;index" json:"author_id"`
	Author          *User     `gorm:"foreignKey:AuthorID" json:"-"`
	PostID          uint64    `gorm:"not null;index:idx_comments_post_created" json:"post_id"`
	ParentCommentID *uint64   `json:"parent_comment_id,omitempty"`
	Parent          *Comment  `gorm:"foreignKey:ParentCommentID" json:"-"`
	IsApproved      bool      `gorm:"not null;default:true" json:"is_approved"`
	IsDeleted       bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt       time.Time `gorm:"index:idx_comments_post_created" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OwnerID implements the Owned interface
func (c *Comment) OwnerID() string {
	return c.AuthorID
}

// CommentResponse is the serialized form of a comment with author and an
// optional one-level parent preview
type CommentResponse struct {
	ID         uint64                 `json:"id"`
	Content    string                 `json:"content"`
	Author     *AuthorResponse        `json:"author,omitempty"`
	PostID     uint64                 `json:"post_id"`
	Parent     *ParentCommentResponse `json:"parent_comment,omitempty"`
	IsApproved bool                   `json:"is_approved"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// ParentCommentResponse is the shallow parent preview embedded in replies
type ParentCommentResponse struct {
	ID      uint64          `json:"id"`
	Content string          `json:"content"`
	Author  *AuthorResponse `json:"author,omitempty"`
}

// ToResponse converts Comment to CommentResponse
func (c *Comment) ToResponse() *CommentResponse {
	resp := &CommentResponse{
		ID:         c.ID,
		Content:    c.Content,
		PostID:     c.PostID,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Author != nil {
		resp.Author = c.Author.ToAuthor()
	}
	if c.Parent != nil {
		parent := &ParentCommentResponse{
			ID:      c.Parent.ID,
			Content: c.Parent.Content,
		}
		if c.Parent.Author != nil {
			parent.Author = c.Parent.Author.ToAuthor()
		}
		resp.Parent = parent
	}
	return resp
}

// CreateCommentRequest create comment payload
type CreateCommentRequest struct {
	Content         string  `json:"content" binding:"required,min=1,max=1000"`
	ParentCommentID *uint64 `json:"parent_comment_id"`
}

// UpdateCommentRequest edit comment payload
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// ApproveCommentRequest moderation payload
type ApproveCommentRequest struct {
	IsApproved *bool `json:"is_approved" binding:"required"`
}
