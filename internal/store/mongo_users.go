package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/hpandey/instaclone-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore is the Mongo-backed UserStore.
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore creates a MongoUserStore over the users collection.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = strings.ToLower(user.Email)
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	user.CreatedAt = time.Now()

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return s.findOne(ctx, bson.M{
		"resetToken":       token,
		"resetTokenExpiry": bson.M{"$gt": now},
	})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"resetToken":       token,
		"resetTokenExpiry": expiry,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password": passwordHash},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"resetTokenExpiry": bson.M{"$lt": now}},
		bson.M{"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *MongoUserStore) Follow(ctx context.Context, followerID, targetID primitive.ObjectID) (*models.User, error) {
	return s.updateFollowLinks(ctx, followerID, targetID, "$addToSet")
}

func (s *MongoUserStore) Unfollow(ctx context.Context, followerID, targetID primitive.ObjectID) (*models.User, error) {
	return s.updateFollowLinks(ctx, followerID, targetID, "$pull")
}

// updateFollowLinks applies op ($addToSet or $pull) to both sides of the
// relationship and returns the updated follower record.
func (s *MongoUserStore) updateFollowLinks(ctx context.Context, followerID, targetID primitive.ObjectID, op string) (*models.User, error) {
	res, err := s.coll.UpdateByID(ctx, targetID, bson.M{op: bson.M{"followers": followerID}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.findOneAndUpdate(ctx, followerID, bson.M{op: bson.M{"following": targetID}})
}

func (s *MongoUserStore) UpdatePic(ctx context.Context, id primitive.ObjectID, pic string) (*models.User, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"pic": pic}})
}

func (s *MongoUserStore) UpdateBio(ctx context.Context, id primitive.ObjectID, bio string) (*models.User, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"bio": bio}})
}

func (s *MongoUserStore) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	var user models.User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) SearchByPrefix(ctx context.Context, query string) ([]models.UserSummary, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"email": bson.M{"$regex": pattern}},
		{"name": bson.M{"$regex": pattern}},
	}}

	cursor, err := s.coll.Find(ctx, filter, options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "email": 1, "pic": 1}).
		SetLimit(20),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
