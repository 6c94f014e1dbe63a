package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors the profile of an externally authenticated user.
// AuthID is the identity provider's subject id and is the upsert
// conflict key; email/name/image are refreshed on every sign-in.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthID    string             `bson:"authId" json:"authId"` // Unique per identity provider subject
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
