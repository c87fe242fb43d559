package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tutorial represents a tutorial record stored in the tutorials collection
type Tutorial struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Published   bool               `json:"published" bson:"published"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateTutorialRequest represents a request to create a tutorial.
// Published is always false on creation and is not accepted from the client.
type CreateTutorialRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTutorialRequest represents a partial update of a tutorial.
// Only non-nil fields are applied.
type UpdateTutorialRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// DeleteAllResponse reports how many tutorials a bulk delete removed
type DeleteAllResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
