package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/config"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/repository"
	"github.com/inkwell/blog-backend/pkg/cache"
	"github.com/inkwell/blog-backend/pkg/slug"
	"gorm.io/gorm"
)

// ListPostsQuery filters for the public post listing
type ListPostsQuery struct {
	Search   string
	Category string
	AuthorID string
	Status   string
	Page     int
	Limit    int
}

// PostService business logic for posts
type PostService interface {
	List(viewer domain.Principal, q ListPostsQuery) ([]*domain.PostResponse, *common.Meta, error)
	Get(viewer domain.Principal, idOrSlug string) (*domain.PostResponse, error)
	ListMine(viewer domain.Principal, status string, page, limit int) ([]*domain.PostResponse, *common.Meta, error)
	Stats() (*domain.PostStats, error)
	Create(authorID string, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	Update(viewer domain.Principal, id uint64, req *domain.UpdatePostRequest) (*domain.PostResponse, error)
	Delete(viewer domain.Principal, id uint64) error
}

type postService struct {
	repo  repository.PostRepository
	cache cache.Service // nil when Redis is unavailable
	cfg   config.AppConfig
}

// NewPostService creates a new PostService
func NewPostService(repo repository.PostRepository, cacheService cache.Service, cfg config.AppConfig) PostService {
	return &postService{repo: repo, cache: cacheService, cfg: cfg}
}

// cachedPostPage is the cache payload for one public listing page
type cachedPostPage struct {
	Posts []*domain.PostResponse `json:"posts"`
	Meta  *common.Meta           `json:"meta"`
}

// List retrieves paginated posts. Anonymous callers and non-elevated viewers
// only ever see published posts; admins, or authors listing their own content,
// may filter by status (including drafts).
func (s *postService) List(viewer domain.Principal, q ListPostsQuery) ([]*domain.PostResponse, *common.Meta, error) {
	page, limit := s.clampPage(q.Page, q.Limit, s.cfg.PostPageSize)

	filter := repository.PostFilter{
		Search:   q.Search,
		Category: q.Category,
		AuthorID: q.AuthorID,
	}
	elevated := viewer.IsAdmin() || (!viewer.IsAnonymous() && q.AuthorID == viewer.ID)
	if elevated {
		filter.Status = q.Status
	} else {
		filter.Status = string(domain.StatusPublished)
	}

	cacheable := s.cache != nil && viewer.IsAnonymous() &&
		q.Search == "" && q.Category == "" && q.AuthorID == "" && q.Status == ""
	if cacheable {
		if data, err := s.cache.GetPostPage(context.Background(), page, limit); err == nil {
			var cached cachedPostPage
			if jsonErr := decodeJSON(data, &cached); jsonErr == nil {
				return cached.Posts, cached.Meta, nil
			}
		}
	}

	posts, total, err := s.repo.List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}
	meta := common.NewMeta(page, limit, len(responses), total)

	if cacheable {
		_ = s.cache.SetPostPage(context.Background(), page, limit, cachedPostPage{Posts: responses, Meta: meta})
	}

	return responses, meta, nil
}

// Get retrieves a single post by numeric ID or slug. Soft-deleted posts are
// absent; drafts require author or admin visibility. A successful fetch of a
// published post bumps the view counter, every time, with no viewer
// deduplication.
func (s *postService) Get(viewer domain.Principal, idOrSlug string) (*domain.PostResponse, error) {
	var post *domain.Post
	var err error
	if id, parseErr := strconv.ParseUint(idOrSlug, 10, 64); parseErr == nil {
		post, err = s.repo.FindByID(id)
	} else {
		post, err = s.repo.FindBySlug(idOrSlug)
	}
	if err != nil {
		return nil, common.ErrPostNotFound
	}

	if !domain.CanViewPost(post, viewer) {
		return nil, common.ErrForbidden
	}

	if post.Status == domain.StatusPublished {
		if err := s.repo.IncrementViews(post.ID); err == nil {
			post.Views++
		}
	}

	return post.ToResponse(), nil
}

// ListMine lists the viewer's own posts; admins see everyone's. Status filter
// is unrestricted here since the viewer already owns (or administers) the rows.
func (s *postService) ListMine(viewer domain.Principal, status string, page, limit int) ([]*domain.PostResponse, *common.Meta, error) {
	page, limit = s.clampPage(page, limit, s.cfg.PostPageSize)

	filter := repository.PostFilter{Status: status}
	if !viewer.IsAdmin() {
		filter.AuthorID = viewer.ID
	}

	posts, total, err := s.repo.List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}
	return responses, common.NewMeta(page, limit, len(responses), total), nil
}

// Stats returns dashboard aggregates, cached briefly
func (s *postService) Stats() (*domain.PostStats, error) {
	if s.cache != nil {
		if data, err := s.cache.GetStats(context.Background()); err == nil {
			var stats domain.PostStats
			if jsonErr := decodeJSON(data, &stats); jsonErr == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.repo.Stats(5)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetStats(context.Background(), stats)
	}
	return stats, nil
}

// Create persists a new post. The slug is derived from the title here, once;
// later title edits never touch it. Uniqueness is guaranteed by the slug
// column's unique index: candidates are probed for a likely-free suffix, and a
// duplicate-key failure from a concurrent writer just moves on to the next
// suffix. A post created as published gets its PublishedAt stamp immediately.
func (s *postService) Create(authorID string, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	post := &domain.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      authorID,
		Status:        domain.StatusDraft,
		Category:      domain.CategoryOther,
		Tags:          req.Tags,
	}
	if req.Status != "" {
		post.Status = domain.PostStatus(req.Status)
	}
	if req.Category != "" {
		post.Category = domain.PostCategory(req.Category)
	}
	if post.Status == domain.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	base := slug.Make(req.Title)
	if base == "" {
		base = "post"
	}

	created := false
	for i := 0; i < s.cfg.SlugRetryLimit; i++ {
		candidate := slug.WithSuffix(base, i)

		exists, err := s.repo.SlugExists(candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		post.Slug = candidate
		err = s.repo.Create(post)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent writer; try the next suffix
			continue
		}
		return nil, err
	}
	if !created {
		return nil, common.ErrSlugConflict
	}

	s.invalidateCaches()

	// Reload with the author preloaded for the response
	fresh, err := s.repo.FindByID(post.ID)
	if err != nil {
		return post.ToResponse(), nil
	}
	return fresh.ToResponse(), nil
}

// Update applies a partial update. Author and slug are immutable. The first
// transition into published stamps PublishedAt; the stamp is never cleared or
// recomputed afterwards, even if the post is later pulled back to draft.
func (s *postService) Update(viewer domain.Principal, id uint64, req *domain.UpdatePostRequest) (*domain.PostResponse, error) {
	post, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrPostNotFound
	}

	if !domain.CanModify(post, viewer) {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Category != nil {
		post.Category = domain.PostCategory(*req.Category)
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.Status != nil {
		newStatus := domain.PostStatus(*req.Status)
		if newStatus == domain.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = newStatus
	}

	if err := s.repo.Save(post); err != nil {
		return nil, err
	}

	s.invalidateCaches()
	return post.ToResponse(), nil
}

// Delete soft-deletes a post; the row and its slug remain reserved forever
func (s *postService) Delete(viewer domain.Principal, id uint64) error {
	post, err := s.repo.FindByID(id)
	if err != nil {
		return common.ErrPostNotFound
	}

	if !domain.CanModify(post, viewer) {
		return common.ErrForbidden
	}

	if err := s.repo.SoftDelete(id); err != nil {
		return common.ErrPostNotFound
	}

	s.invalidateCaches()
	return nil
}

func (s *postService) clampPage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > s.cfg.MaxPageSize {
		limit = defaultLimit
	}
	return page, limit
}

func (s *postService) invalidateCaches() {
	if s.cache == nil {
		return
	}
	ctx := context.Background()
	_ = s.cache.InvalidatePostPages(ctx)
	_ = s.cache.InvalidateStats(ctx)
}
