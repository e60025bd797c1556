package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/domain"
)

// --- Mock CommentRepository ---

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) ListByPost(postID uint64, page, limit int) ([]*domain.Comment, int64, error) {
	args := m.Called(postID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) FindByID(id uint64) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) Create(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) Save(comment *domain.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *mockCommentRepo) SoftDelete(id uint64) error {
	return m.Called(id).Error(0)
}

func newCommentServiceForTest(repo *mockCommentRepo, postRepo *mockPostRepo) CommentService {
	return NewCommentService(repo, postRepo, 20, 100)
}

// --- Create ---

func TestCreateComment_OnPublishedPost(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	postRepo.On("FindByID", uint64(1)).Return(publishedPost(1, "author-1"), nil)
	repo.On("Create", mock.AnythingOfType("*domain.Comment")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Comment).ID = 10
	}).Return(nil)
	repo.On("FindByID", uint64(10)).Return(nil, errors.New("no preload"))

	resp, err := svc.Create("reader-1", 1, &domain.CreateCommentRequest{Content: "Nice post"})

	assert.NoError(t, err)
	assert.True(t, resp.IsApproved)
	assert.Equal(t, uint64(1), resp.PostID)
	repo.AssertExpectations(t)
}

func TestCreateComment_DraftPostRejected(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	draft := &domain.Post{ID: 1, AuthorID: "author-1", Status: domain.StatusDraft}
	postRepo.On("FindByID", uint64(1)).Return(draft, nil)

	_, err := svc.Create("reader-1", 1, &domain.CreateCommentRequest{Content: "First!"})

	assert.ErrorIs(t, err, common.ErrPostNotPublished)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateComment_MissingPost(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	postRepo.On("FindByID", uint64(404)).Return(nil, errors.New("record not found"))

	_, err := svc.Create("reader-1", 404, &domain.CreateCommentRequest{Content: "Hello"})

	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestCreateComment_ReplyToCommentOnSamePost(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	postRepo.On("FindByID", uint64(1)).Return(publishedPost(1, "author-1"), nil)
	parentID := uint64(7)
	repo.On("FindByID", uint64(7)).Return(&domain.Comment{ID: 7, PostID: 1}, nil)
	repo.On("Create", mock.AnythingOfType("*domain.Comment")).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.Comment).ID = 11
	}).Return(nil)
	repo.On("FindByID", uint64(11)).Return(nil, errors.New("no preload"))

	_, err := svc.Create("reader-1", 1, &domain.CreateCommentRequest{
		Content:         "Agreed",
		ParentCommentID: &parentID,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateComment_ReplyToCommentOnOtherPost(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	postRepo.On("FindByID", uint64(1)).Return(publishedPost(1, "author-1"), nil)
	parentID := uint64(7)
	repo.On("FindByID", uint64(7)).Return(&domain.Comment{ID: 7, PostID: 99}, nil)

	_, err := svc.Create("reader-1", 1, &domain.CreateCommentRequest{
		Content:         "Agreed",
		ParentCommentID: &parentID,
	})

	assert.ErrorIs(t, err, common.ErrInvalidParent)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateComment_MissingParent(t *testing.T) {
	repo := new(mockCommentRepo)
	postRepo := new(mockPostRepo)
	svc := newCommentServiceForTest(repo, postRepo)

	postRepo.On("FindByID", uint64(1)).Return(publishedPost(1, "author-1"), nil)
	parentID := uint64(7)
	repo.On("FindByID", uint64(7)).Return(nil, errors.New("record not found"))

	_, err := svc.Create("reader-1", 1, &domain.CreateCommentRequest{
		Content:         "Agreed",
		ParentCommentID: &parentID,
	})

	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}

// --- Update / Delete ---

func TestUpdateComment_OwnerEdits(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	comment := &domain.Comment{ID: 3, AuthorID: "reader-1", PostID: 1, Content: "old"}
	repo.On("FindByID", uint64(3)).Return(comment, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Comment")).Return(nil)

	viewer := domain.Principal{ID: "reader-1", Role: domain.RoleAuthor}
	resp, err := svc.Update(viewer, 3, &domain.UpdateCommentRequest{Content: "new"})

	assert.NoError(t, err)
	assert.Equal(t, "new", resp.Content)
}

func TestUpdateComment_StrangerForbidden(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	comment := &domain.Comment{ID: 3, AuthorID: "reader-1", PostID: 1}
	repo.On("FindByID", uint64(3)).Return(comment, nil)

	viewer := domain.Principal{ID: "reader-2", Role: domain.RoleAuthor}
	_, err := svc.Update(viewer, 3, &domain.UpdateCommentRequest{Content: "new"})

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestDeleteComment_AdminDeletesAnyComment(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	comment := &domain.Comment{ID: 3, AuthorID: "reader-1", PostID: 1}
	repo.On("FindByID", uint64(3)).Return(comment, nil)
	repo.On("SoftDelete", uint64(3)).Return(nil)

	viewer := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	err := svc.Delete(viewer, 3)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteComment_NotFound(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	repo.On("FindByID", uint64(404)).Return(nil, errors.New("record not found"))

	viewer := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	err := svc.Delete(viewer, 404)

	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}

// --- Moderation ---

func TestSetApproval_Reject(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	comment := &domain.Comment{ID: 3, AuthorID: "reader-1", PostID: 1, IsApproved: true}
	repo.On("FindByID", uint64(3)).Return(comment, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Comment")).Return(nil)

	resp, err := svc.SetApproval(3, false)

	assert.NoError(t, err)
	assert.False(t, resp.IsApproved)
}

func TestSetApproval_Reapprove(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	comment := &domain.Comment{ID: 3, AuthorID: "reader-1", PostID: 1, IsApproved: false}
	repo.On("FindByID", uint64(3)).Return(comment, nil)
	repo.On("Save", mock.AnythingOfType("*domain.Comment")).Return(nil)

	resp, err := svc.SetApproval(3, true)

	assert.NoError(t, err)
	assert.True(t, resp.IsApproved)
}

// --- Listing ---

func TestListComments_DefaultsApplied(t *testing.T) {
	repo := new(mockCommentRepo)
	svc := newCommentServiceForTest(repo, new(mockPostRepo))

	repo.On("ListByPost", uint64(1), 1, 20).Return([]*domain.Comment{
		{ID: 1, PostID: 1, Content: "a", IsApproved: true},
		{ID: 2, PostID: 1, Content: "b", IsApproved: true},
	}, int64(2), nil)

	comments, meta, err := svc.ListByPost(1, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, int64(1), meta.Pages)
	repo.AssertExpectations(t)
}
