package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/config"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/repository"
)

// --- Mock PostRepository ---

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) FindByID(id uint64) (*domain.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) FindBySlug(slug string) (*domain.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *mockPostRepo) List(filter repository.PostFilter, page, limit int) ([]*domain.Post, int64, error) {
	args := m.Called(filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) Create(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) Save(post *domain.Post) error {
	return m.Called(post).Error(0)
}

func (m *mockPostRepo) SoftDelete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) IncrementViews(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockPostRepo) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) Stats(topN int) (*domain.PostStats, error) {
	args := m.Called(topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostStats), args.Error(1)
}

func testAppConfig() config.AppConfig {
	return config.AppConfig{
		PostPageSize:    10,
		CommentPageSize: 20,
		MaxPageSize:     100,
		SlugRetryLimit:  100,
	}
}

func publishedPost(id uint64, authorID string) *domain.Post {
	now := time.Now()
	return &domain.Post{
		ID:          id,
		Title:       "A Post",
		Slug:        "a-post",
		Content:     "content body here",
		AuthorID:    authorID,
		Status:      domain.StatusPublished,
		Category:    domain.CategoryOther,
		Views:       10,
		PublishedAt: &now,
	}
}

// --- Create ---

func TestCreatePost_SlugFromTitle(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("SlugExists", "hello-world").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Post).ID = 1
	}).Return(nil)
	repo.On("FindByID", uint64(1)).Return(nil, errors.New("no preload"))

	resp, err := svc.Create("author-1", &domain.CreatePostRequest{
		Title:   "Hello, World!!!",
		Content: "some content here",
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello-world", resp.Slug)
	assert.Equal(t, domain.StatusDraft, resp.Status)
	assert.Nil(t, resp.PublishedAt)
	repo.AssertExpectations(t)
}

func TestCreatePost_SlugCollisionGetsSuffix(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("SlugExists", "hello-world").Return(true, nil)
	repo.On("SlugExists", "hello-world-1").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Post).ID = 2
	}).Return(nil)
	repo.On("FindByID", uint64(2)).Return(nil, errors.New("no preload"))

	resp, err := svc.Create("author-1", &domain.CreatePostRequest{
		Title:   "Hello World",
		Content: "some content here",
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", resp.Slug)
	repo.AssertExpectations(t)
}

func TestCreatePost_EveryCandidateTaken(t *testing.T) {
	cfg := testAppConfig()
	cfg.SlugRetryLimit = 3
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, cfg)

	repo.On("SlugExists", mock.AnythingOfType("string")).Return(true, nil)

	_, err := svc.Create("author-1", &domain.CreatePostRequest{
		Title:   "Hello World",
		Content: "some content here",
	})

	assert.ErrorIs(t, err, common.ErrSlugConflict)
}

func TestCreatePost_PublishedStampsPublishedAt(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("SlugExists", "launch-day").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Post).ID = 3
	}).Return(nil)
	repo.On("FindByID", uint64(3)).Return(nil, errors.New("no preload"))

	resp, err := svc.Create("author-1", &domain.CreatePostRequest{
		Title:   "Launch Day",
		Content: "some content here",
		Status:  "published",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, resp.Status)
	assert.NotNil(t, resp.PublishedAt)
}

func TestCreatePost_SymbolOnlyTitleFallsBack(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("SlugExists", "post").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Post).ID = 4
	}).Return(nil)
	repo.On("FindByID", uint64(4)).Return(nil, errors.New("no preload"))

	resp, err := svc.Create("author-1", &domain.CreatePostRequest{
		Title:   "!!! ???",
		Content: "some content here",
	})

	assert.NoError(t, err)
	assert.Equal(t, "post", resp.Slug)
}

// --- Get ---

func TestGetPost_PublishedIncrementsViews(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(7, "author-1")
	repo.On("FindByID", uint64(7)).Return(post, nil)
	repo.On("IncrementViews", uint64(7)).Return(nil)

	resp, err := svc.Get(domain.Principal{}, "7")

	assert.NoError(t, err)
	assert.Equal(t, int64(11), resp.Views)
	repo.AssertExpectations(t)
}

func TestGetPost_BySlug(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(8, "author-1")
	repo.On("FindBySlug", "a-post").Return(post, nil)
	repo.On("IncrementViews", uint64(8)).Return(nil)

	resp, err := svc.Get(domain.Principal{}, "a-post")

	assert.NoError(t, err)
	assert.Equal(t, "a-post", resp.Slug)
	repo.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestGetPost_DraftHiddenFromAnonymous(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	draft := &domain.Post{ID: 9, AuthorID: "author-1", Status: domain.StatusDraft}
	repo.On("FindByID", uint64(9)).Return(draft, nil)

	_, err := svc.Get(domain.Principal{}, "9")

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "IncrementViews", mock.Anything)
}

func TestGetPost_DraftHiddenFromOtherAuthor(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	draft := &domain.Post{ID: 9, AuthorID: "author-1", Status: domain.StatusDraft}
	repo.On("FindByID", uint64(9)).Return(draft, nil)

	_, err := svc.Get(domain.Principal{ID: "author-2", Role: domain.RoleAuthor}, "9")

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestGetPost_DraftVisibleToOwnerWithoutViewBump(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	draft := &domain.Post{ID: 9, AuthorID: "author-1", Status: domain.StatusDraft, Views: 3}
	repo.On("FindByID", uint64(9)).Return(draft, nil)

	resp, err := svc.Get(domain.Principal{ID: "author-1", Role: domain.RoleAuthor}, "9")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), resp.Views)
	repo.AssertNotCalled(t, "IncrementViews", mock.Anything)
}

func TestGetPost_DraftVisibleToAdmin(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	draft := &domain.Post{ID: 9, AuthorID: "author-1", Status: domain.StatusDraft}
	repo.On("FindByID", uint64(9)).Return(draft, nil)

	_, err := svc.Get(domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, "9")

	assert.NoError(t, err)
}

func TestGetPost_NotFound(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("FindByID", uint64(404)).Return(nil, errors.New("record not found"))

	_, err := svc.Get(domain.Principal{}, "404")

	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

// --- List ---

func TestListPosts_AnonymousForcedToPublished(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{Status: "published"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	_, _, err := svc.List(domain.Principal{}, ListPostsQuery{Status: "draft"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPosts_AdminMayFilterDrafts(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{Status: "draft"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	_, _, err := svc.List(domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}, ListPostsQuery{Status: "draft"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPosts_AuthorElevatedOnOwnPosts(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{AuthorID: "author-1", Status: "draft"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	_, _, err := svc.List(viewer, ListPostsQuery{AuthorID: "author-1", Status: "draft"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPosts_AuthorNotElevatedOnOthersPosts(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{AuthorID: "author-2", Status: "published"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	_, _, err := svc.List(viewer, ListPostsQuery{AuthorID: "author-2", Status: "draft"})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPosts_PaginationClamped(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{Status: "published"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	_, meta, err := svc.List(domain.Principal{}, ListPostsQuery{Page: -5, Limit: 9999})

	assert.NoError(t, err)
	assert.Equal(t, 1, meta.Page)
	repo.AssertExpectations(t)
}

func TestListMine_NonAdminScopedToSelf(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{AuthorID: "author-1", Status: "draft"}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	_, _, err := svc.ListMine(viewer, "draft", 1, 0)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListMine_AdminSeesAll(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	expected := repository.PostFilter{}
	repo.On("List", expected, 1, 10).Return([]*domain.Post{}, int64(0), nil)

	viewer := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	_, _, err := svc.ListMine(viewer, "", 1, 0)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// --- Update ---

func TestUpdatePost_FirstPublishStampsOnce(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	draft := &domain.Post{ID: 5, AuthorID: "author-1", Status: domain.StatusDraft}
	repo.On("FindByID", uint64(5)).Return(draft, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Post")).Return(nil)

	status := "published"
	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	resp, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, resp.Status)
	assert.NotNil(t, resp.PublishedAt)
}

func TestUpdatePost_RepublishKeepsOriginalStamp(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	original := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	post := &domain.Post{ID: 5, AuthorID: "author-1", Status: domain.StatusDraft, PublishedAt: &original}
	repo.On("FindByID", uint64(5)).Return(post, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Post")).Return(nil)

	status := "published"
	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	resp, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, original, *resp.PublishedAt)
}

func TestUpdatePost_UnpublishKeepsStamp(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	original := *post.PublishedAt
	repo.On("FindByID", uint64(5)).Return(post, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Post")).Return(nil)

	status := "draft"
	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	resp, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Status: &status})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, resp.Status)
	assert.Equal(t, original, *resp.PublishedAt)
}

func TestUpdatePost_TitleEditKeepsSlug(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	repo.On("FindByID", uint64(5)).Return(post, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Post")).Return(nil)

	title := "A Completely Different Title"
	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	resp, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, title, resp.Title)
	assert.Equal(t, "a-post", resp.Slug)
}

func TestUpdatePost_OtherAuthorForbidden(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	repo.On("FindByID", uint64(5)).Return(post, nil)

	title := "Hijacked"
	viewer := domain.Principal{ID: "author-2", Role: domain.RoleAuthor}
	_, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Title: &title})

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestUpdatePost_AdminMayEditAnyPost(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	repo.On("FindByID", uint64(5)).Return(post, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Post")).Return(nil)

	title := "Moderated Title"
	viewer := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	resp, err := svc.Update(viewer, 5, &domain.UpdatePostRequest{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, title, resp.Title)
}

// --- Delete ---

func TestDeletePost_OwnerSoftDeletes(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	repo.On("FindByID", uint64(5)).Return(post, nil)
	repo.On("SoftDelete", uint64(5)).Return(nil)

	viewer := domain.Principal{ID: "author-1", Role: domain.RoleAuthor}
	err := svc.Delete(viewer, 5)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeletePost_OtherAuthorForbidden(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	post := publishedPost(5, "author-1")
	repo.On("FindByID", uint64(5)).Return(post, nil)

	viewer := domain.Principal{ID: "author-2", Role: domain.RoleAuthor}
	err := svc.Delete(viewer, 5)

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything)
}

// --- Stats ---

func TestStats_PassthroughWithoutCache(t *testing.T) {
	repo := new(mockPostRepo)
	svc := NewPostService(repo, nil, testAppConfig())

	repo.On("Stats", 5).Return(&domain.PostStats{TotalPosts: 12, PublishedPosts: 8, DraftPosts: 4}, nil)

	stats, err := svc.Stats()

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalPosts)
	assert.Equal(t, int64(4), stats.DraftPosts)
}
