package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PostStatus publication state of a post
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// PostCategory fixed category set
type PostCategory string

const (
	CategoryTechnology PostCategory = "Technology"
	CategoryBusiness   PostCategory = "Business"
	CategoryLifestyle  PostCategory = "Lifestyle"
	CategoryHealth     PostCategory = "Health"
	CategoryEducation  PostCategory = "Education"
	CategoryOther      PostCategory = "Other"
)

// TagList is a string set stored as a JSON column
type TagList []string

// Value serializes the tag list for storage
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan deserializes the tag list from storage
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tag list type %T", value)
	}
}

// Post domain model (posts table).
// Slug is assigned exactly once at creation and never regenerated; the unique
// index is the actual uniqueness guarantee. PublishedAt is stamped on the first
// transition to published and never cleared. Rows are soft-deleted only.
type Post struct {
	ID            uint64       `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"type:varchar(200);not null" json:"title"`
	Slug          string       `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Content       string       `gorm:"type:text;not null" json:"content"`
	Excerpt       string       `gorm:"type:varchar(500)" json:"excerpt,omitempty"`
	FeaturedImage string       `gorm:"type:varchar(255)" json:"featured_image,omitempty"`
	AuthorID      string       `gorm:"type:char(36);not null;index:idx_posts_author_status" json:"author_id"`
	Author        *User        `gorm:"foreignKey:AuthorID" json:"-"`
	Status        PostStatus   `gorm:"type:varchar(20);not null;default:draft;index:idx_posts_author_status" json:"status"`
	Category      PostCategory `gorm:"type:varchar(30);not null;default:Other" json:"category"`
	Tags          TagList      `gorm:"type:text" json:"tags"`
	Views         int64        `gorm:"not null;default:0" json:"views"`
	PublishedAt   *time.Time   `json:"published_at,omitempty"`
	IsDeleted     bool         `gorm:"not null;default:false;index" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OwnerID implements the Owned interface
func (p *Post) OwnerID() string {
	return p.AuthorID
}

// PostResponse is the serialized form of a post with its author embedded
type PostResponse struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"`
	Excerpt       string          `json:"excerpt,omitempty"`
	FeaturedImage string          `json:"featured_image,omitempty"`
	Author        *AuthorResponse `json:"author,omitempty"`
	Status        PostStatus      `json:"status"`
	Category      PostCategory    `json:"category"`
	Tags          TagList         `json:"tags"`
	Views         int64           `json:"views"`
	PublishedAt   *time.Time      `json:"published_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToResponse converts Post to PostResponse
func (p *Post) ToResponse() *PostResponse {
	resp := &PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Status:        p.Status,
		Category:      p.Category,
		Tags:          p.Tags,
		Views:         p.Views,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = p.Author.ToAuthor()
	}
	return resp
}

// CreatePostRequest create post payload
type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,min=3,max=200"`
	Content       string   `json:"content" binding:"required,min=10"`
	Excerpt       string   `json:"excerpt" binding:"max=500"`
	FeaturedImage string   `json:"featured_image"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published"`
	Category      string   `json:"category" binding:"omitempty,oneof=Technology Business Lifestyle Health Education Other"`
	Tags          []string `json:"tags"`
}

// UpdatePostRequest partial update payload; nil fields are left untouched.
// The author and slug are not updatable.
type UpdatePostRequest struct {
	Title         *string   `json:"title" binding:"omitempty,min=3,max=200"`
	Content       *string   `json:"content" binding:"omitempty,min=10"`
	Excerpt       *string   `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage *string   `json:"featured_image"`
	Status        *string   `json:"status" binding:"omitempty,oneof=draft published"`
	Category      *string   `json:"category" binding:"omitempty,oneof=Technology Business Lifestyle Health Education Other"`
	Tags          *[]string `json:"tags"`
}

// PostStats admin dashboard aggregates
type PostStats struct {
	TotalPosts     int64           `json:"totalPosts"`
	PublishedPosts int64           `json:"publishedPosts"`
	DraftPosts     int64           `json:"draftPosts"`
	TopPosts       []*PostResponse `json:"topPosts"`
}
