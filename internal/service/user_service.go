package service

import (
	"context"

	"movie-lookup-service/internal/registry"
)

// UserService exposes the favorites and history operations of the
// registry to the front ends.
type UserService struct {
	store registry.Store
}

// NewUserService creates a new UserService.
func NewUserService(store registry.Store) *UserService {
	return &UserService{store: store}
}

// Register creates the user's record if it does not exist yet.
// Registering a known user changes nothing.
func (s *UserService) Register(ctx context.Context, userID string) error {
	return s.store.Register(ctx, userID)
}

// AddFavorite registers the user and adds title to their favorites.
// Re-adding a title is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, userID, title string) error {
	if err := s.store.Register(ctx, userID); err != nil {
		return err
	}
	return s.store.AddFavorite(ctx, userID, title)
}

// Favorites returns the user's favorite titles; empty for unknown ids.
func (s *UserService) Favorites(ctx context.Context, userID string) ([]string, error) {
	if err := s.store.Register(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Favorites(ctx, userID)
}

// History returns the user's queries in order; empty for unknown ids.
func (s *UserService) History(ctx context.Context, userID string) ([]string, error) {
	if err := s.store.Register(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.History(ctx, userID)
}

// UserIDs returns every registered user id, for broadcast fan-out.
func (s *UserService) UserIDs(ctx context.Context) ([]string, error) {
	return s.store.UserIDs(ctx)
}
