package service

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/cache"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// UserUpdateInput carries optional field updates for an account.
type UserUpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService provides the admin-facing user CRUD with a cache-aside read
// path. Authentication reads the repository directly, never this cache, so
// deactivation takes effect immediately for token validation.
type UserService struct {
	repo       repository.UserRepository
	cache      *cache.Store
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(repo repository.UserRepository, store *cache.Store, dispatcher events.Dispatcher) *UserService {
	return &UserService{repo: repo, cache: store, dispatcher: dispatcher}
}

// Get returns a user by ID, serving from cache when possible.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	var cached domain.User
	if s.cache.Get(ctx, cache.UserKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cache.UserKey(id), user)
	return user, nil
}

// List returns users matching the filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.repo.List(ctx, filter)
}

// Update applies the provided fields and invalidates the cached entry.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserUpdated, user.ID, nil))
	return user, nil
}

// Deactivate soft-deletes the account. Outstanding tokens for it stop
// resolving on the next request.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.New(events.EventUserDeactivated, id, nil))
	return nil
}
