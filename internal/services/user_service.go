package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/models"
	"github.com/hpandey/instaclone-be/internal/store"
	"github.com/hpandey/instaclone-be/internal/websocket"
)

// UserServiceProvider defines the interface for profile and relationship
// services.
type UserServiceProvider interface {
	GetProfile(ctx context.Context, userID string) (*models.User, []models.Post, error)
	Follow(ctx context.Context, user *models.User, followID string) (*models.User, error)
	Unfollow(ctx context.Context, user *models.User, unfollowID string) (*models.User, error)
	UpdatePic(ctx context.Context, user *models.User, pic string) (*models.User, error)
	UpdateBio(ctx context.Context, user *models.User, bio string) (*models.User, error)
	Search(ctx context.Context, query string) ([]models.UserSummary, error)
}

// UserService provides business logic for profiles, follows and search.
type UserService struct {
	users store.UserStore
	posts store.PostStore
	feed  Publisher
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, posts store.PostStore, feed Publisher) *UserService {
	return &UserService{users: users, posts: posts, feed: feed}
}

// GetProfile returns a user together with their posts.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, []models.Post, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil, apperror.NewValidationError("Invalid user id", err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	user.PasswordHash = ""

	posts, err := s.posts.ByAuthor(ctx, id)
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	return user, posts, nil
}

// Follow adds the caller to the target's followers and returns the caller's
// updated record.
func (s *UserService) Follow(ctx context.Context, user *models.User, followID string) (*models.User, error) {
	targetID, err := primitive.ObjectIDFromHex(followID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user id", err)
	}
	if targetID == user.ID {
		return nil, apperror.NewValidationError("You cannot follow yourself", nil)
	}

	updated, err := s.users.Follow(ctx, user.ID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	updated.PasswordHash = ""

	if s.feed != nil {
		s.feed.Publish(websocket.ActionUserFollowed, map[string]interface{}{
			"follower": user.ID,
			"followed": targetID,
		})
	}
	return updated, nil
}

// Unfollow removes the caller from the target's followers and returns the
// caller's updated record.
func (s *UserService) Unfollow(ctx context.Context, user *models.User, unfollowID string) (*models.User, error) {
	targetID, err := primitive.ObjectIDFromHex(unfollowID)
	if err != nil {
		return nil, apperror.NewValidationError("Invalid user id", err)
	}

	updated, err := s.users.Unfollow(ctx, user.ID, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

// UpdatePic replaces the caller's profile picture.
func (s *UserService) UpdatePic(ctx context.Context, user *models.User, pic string) (*models.User, error) {
	if pic == "" {
		return nil, apperror.NewValidationError("Please add a picture", nil)
	}
	updated, err := s.users.UpdatePic(ctx, user.ID, pic)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to update profile picture", err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

// UpdateBio replaces the caller's bio.
func (s *UserService) UpdateBio(ctx context.Context, user *models.User, bio string) (*models.User, error) {
	updated, err := s.users.UpdateBio(ctx, user.ID, bio)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to update bio", err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

// Search finds users whose email or name starts with the query,
// case-insensitively.
func (s *UserService) Search(ctx context.Context, query string) ([]models.UserSummary, error) {
	users, err := s.users.SearchByPrefix(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("Search failed", err)
	}
	return users, nil
}
