// Package store contains the persistence layer. Interfaces are defined here so
// services can be exercised against fakes; the Mongo implementations live in
// the same package.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hpandey/instaclone-be/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// UserStore persists user accounts and their credential state.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByResetToken matches a pending reset whose expiry is still after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error
	// UpdatePassword replaces the stored hash and clears both reset fields in
	// the same write.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	// ClearExpiredResetTokens removes reset fields whose expiry is before now
	// and reports how many documents were touched.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)

	// Follow links follower to target and returns the updated follower record.
	Follow(ctx context.Context, followerID, targetID primitive.ObjectID) (*models.User, error)
	Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) (*models.User, error)

	UpdatePic(ctx context.Context, id primitive.ObjectID, pic string) (*models.User, error)
	UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) (*models.User, error)
	SearchByPrefix(ctx context.Context, query string) ([]models.UserSummary, error)
}

// PostStore persists posts with their embedded likes and comments.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)

	// All returns every post, newest first.
	All(ctx context.Context) ([]models.Post, error)
	// ByAuthors returns posts by any of the given users, newest first.
	ByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error)
	ByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)

	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
