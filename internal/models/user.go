package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultBio is set on accounts that have not written their own.
const DefaultBio = "Hi there, I am using Insta Clone."

// User represents a user account document.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name         string               `bson:"name" json:"name"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"` // never expose this to the client
	Pic          string               `bson:"pic" json:"pic"`
	Bio          string               `bson:"bio" json:"bio"`
	Followers    []primitive.ObjectID `bson:"followers" json:"followers"`
	Following    []primitive.ObjectID `bson:"following" json:"following"`

	// Both are set together while a password reset is pending and cleared
	// together once it completes.
	ResetToken       string     `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"resetTokenExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the trimmed shape returned by user search.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Pic   string             `bson:"pic" json:"pic"`
}
