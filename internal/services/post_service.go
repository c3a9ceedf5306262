package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/models"
	"github.com/hpandey/instaclone-be/internal/store"
	"github.com/hpandey/instaclone-be/internal/websocket"
)

// Publisher pushes activity events to the live feed.
type Publisher interface {
	Publish(action string, payload interface{})
}

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	CreatePost(ctx context.Context, user *models.User, title, body, photo string) (*models.Post, error)
	AllPosts(ctx context.Context) ([]models.Post, error)
	FollowingPosts(ctx context.Context, user *models.User) ([]models.Post, error)
	MyPosts(ctx context.Context, user *models.User) ([]models.Post, error)
	Like(ctx context.Context, postID string, user *models.User) (*models.Post, error)
	Unlike(ctx context.Context, postID string, user *models.User) (*models.Post, error)
	Comment(ctx context.Context, postID string, user *models.User, text string) (*models.Post, error)
	DeletePost(ctx context.Context, postID string, user *models.User) (primitive.ObjectID, error)
}

// PostService provides business logic for posts, likes and comments.
type PostService struct {
	posts store.PostStore
	feed  Publisher
}

// NewPostService creates a new PostService.
func NewPostService(posts store.PostStore, feed Publisher) *PostService {
	return &PostService{posts: posts, feed: feed}
}

// CreatePost stores a new post by the authenticated user.
func (s *PostService) CreatePost(ctx context.Context, user *models.User, title, body, photo string) (*models.Post, error) {
	if title == "" || body == "" || photo == "" {
		return nil, apperror.NewValidationError("Please add all the fields", nil)
	}

	post := &models.Post{
		Title:        title,
		Body:         body,
		Photo:        photo,
		PostedBy:     user.ID,
		PostedByName: user.Name,
	}
	created, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create post", err)
	}

	s.publish(websocket.ActionPostCreated, created)
	return created, nil
}

// AllPosts returns every post, newest first.
func (s *PostService) AllPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.All(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	return posts, nil
}

// FollowingPosts returns posts by users the caller follows.
func (s *PostService) FollowingPosts(ctx context.Context, user *models.User) ([]models.Post, error) {
	posts, err := s.posts.ByAuthors(ctx, user.Following)
	if err != nil {
		return nil, apperror.NewDatabaseError("Something went wrong", err)
	}
	return posts, nil
}

// MyPosts returns the caller's own posts.
func (s *PostService) MyPosts(ctx context.Context, user *models.User) ([]models.Post, error) {
	posts, err := s.posts.ByAuthor(ctx, user.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch your posts", err)
	}
	return posts, nil
}

// Like records the caller's like on a post.
func (s *PostService) Like(ctx context.Context, postID string, user *models.User) (*models.Post, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.AddLike(ctx, id, user.ID)
	if err != nil {
		return nil, postWriteError("Failed to like post", err)
	}
	s.publish(websocket.ActionPostLiked, post)
	return post, nil
}

// Unlike removes the caller's like from a post.
func (s *PostService) Unlike(ctx context.Context, postID string, user *models.User) (*models.Post, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.RemoveLike(ctx, id, user.ID)
	if err != nil {
		return nil, postWriteError("Failed to unlike post", err)
	}
	s.publish(websocket.ActionPostUnliked, post)
	return post, nil
}

// Comment appends the caller's comment to a post.
func (s *PostService) Comment(ctx context.Context, postID string, user *models.User, text string) (*models.Post, error) {
	if text == "" {
		return nil, apperror.NewValidationError("Comment text is required", nil)
	}
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:           primitive.NewObjectID(),
		Text:         text,
		PostedBy:     user.ID,
		PostedByName: user.Name,
	}
	post, err := s.posts.AddComment(ctx, id, comment)
	if err != nil {
		return nil, postWriteError("Failed to comment", err)
	}
	s.publish(websocket.ActionPostCommented, post)
	return post, nil
}

// DeletePost removes a post. Only the post's author may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID string, user *models.User) (primitive.ObjectID, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return primitive.NilObjectID, apperror.NewNotFoundError("Post not found", nil)
		}
		return primitive.NilObjectID, apperror.NewDatabaseError("Something went wrong", err)
	}

	if err := auth.RequireOwner(post, user); err != nil {
		return primitive.NilObjectID, err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return primitive.NilObjectID, apperror.NewDatabaseError("Failed to delete post", err)
	}

	s.publish(websocket.ActionPostDeleted, map[string]interface{}{"_id": post.ID})
	return post.ID, nil
}

func (s *PostService) publish(action string, payload interface{}) {
	if s.feed != nil {
		s.feed.Publish(action, payload)
	}
}

func parsePostID(postID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return primitive.NilObjectID, apperror.NewValidationError("Invalid post id", err)
	}
	return id, nil
}

func postWriteError(message string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return apperror.NewDatabaseError(message, err)
}
