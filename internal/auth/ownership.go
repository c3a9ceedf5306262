package auth

import (
	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owned is implemented by any resource restricted to its creator.
type Owned interface {
	OwnerID() primitive.ObjectID
}

// RequireOwner allows the operation only when identity owns the resource.
func RequireOwner(resource Owned, identity *models.User) error {
	if resource.OwnerID() != identity.ID {
		return apperror.NewForbiddenError("Unauthorized", nil)
	}
	return nil
}
