package service

import (
	"github.com/inkwell/blog-backend/internal/common"
	"github.com/inkwell/blog-backend/internal/domain"
	"github.com/inkwell/blog-backend/internal/repository"
)

// UserService admin-facing user management
type UserService interface {
	List(page, limit int) ([]*domain.UserResponse, *common.Meta, error)
	SetActive(id string, active bool) (*domain.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// List returns a paginated page of all accounts
func (s *userService) List(page, limit int) ([]*domain.UserResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.repo.List(page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}

	return responses, common.NewMeta(page, limit, len(responses), total), nil
}

// SetActive flips the account's active flag; accounts are never hard-deleted
func (s *userService) SetActive(id string, active bool) (*domain.UserResponse, error) {
	if err := s.repo.SetActive(id, active); err != nil {
		return nil, common.ErrUserNotFound
	}
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrUserNotFound
	}
	return user.ToResponse(), nil
}
