package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its post document. The commenter's name is
// denormalized at write time so listings need no second lookup.
type Comment struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Text         string             `bson:"text" json:"text"`
	PostedBy     primitive.ObjectID `bson:"postedBy" json:"postedBy"`
	PostedByName string             `bson:"postedByName" json:"postedByName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Post represents a post document.
type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title        string               `bson:"title" json:"title"`
	Body         string               `bson:"body" json:"body"`
	Photo        string               `bson:"photo" json:"photo"`
	PostedBy     primitive.ObjectID   `bson:"postedBy" json:"postedBy"`
	PostedByName string               `bson:"postedByName" json:"postedByName"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments     []Comment            `bson:"comments" json:"comments"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// OwnerID identifies the post's author for ownership checks.
func (p *Post) OwnerID() primitive.ObjectID {
	return p.PostedBy
}
