package repository

import (
	"github.com/inkwell/blog-backend/internal/domain"
	"gorm.io/gorm"
)

// PostFilter narrows post listings. Zero values mean "no filter"; soft-deleted
// rows are always excluded.
type PostFilter struct {
	Search   string // title substring
	Category string
	AuthorID string
	Status   string
}

// PostRepository post data access interface
type PostRepository interface {
	FindByID(id uint64) (*domain.Post, error)
	FindBySlug(slug string) (*domain.Post, error)
	List(filter PostFilter, page, limit int) ([]*domain.Post, int64, error)
	Create(post *domain.Post) error
	Save(post *domain.Post) error
	SoftDelete(id uint64) error
	IncrementViews(id uint64) error
	SlugExists(slug string) (bool, error)
	Stats(topN int) (*domain.PostStats, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Preload("Author").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindBySlug(slug string) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Preload("Author").
		Where("slug = ? AND is_deleted = ?", slug, false).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(filter PostFilter, page, limit int) ([]*domain.Post, int64, error) {
	var posts []*domain.Post
	var total int64

	query := r.db.Model(&domain.Post{}).Where("is_deleted = ?", false)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) Save(post *domain.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) SoftDelete(id uint64) error {
	result := r.db.Model(&domain.Post{}).
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

// IncrementViews bumps the view counter atomically in the store; no
// read-modify-write cycle, so concurrent fetches cannot lose updates.
func (r *postRepository) IncrementViews(id uint64) error {
	return r.db.Model(&domain.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// SlugExists checks against all rows including soft-deleted ones: a slug is
// assigned once for the life of the post and never released.
func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) Stats(topN int) (*domain.PostStats, error) {
	stats := &domain.PostStats{}

	base := r.db.Model(&domain.Post{}).Where("is_deleted = ?", false)
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", domain.StatusPublished).
		Count(&stats.PublishedPosts).Error; err != nil {
		return nil, err
	}
	stats.DraftPosts = stats.TotalPosts - stats.PublishedPosts

	var top []*domain.Post
	err := r.db.Preload("Author").
		Where("is_deleted = ? AND status = ?", false, domain.StatusPublished).
		Order("views DESC").
		Limit(topN).
		Find(&top).Error
	if err != nil {
		return nil, err
	}
	stats.TopPosts = make([]*domain.PostResponse, len(top))
	for i, p := range top {
		stats.TopPosts[i] = p.ToResponse()
	}
	return stats, nil
}
