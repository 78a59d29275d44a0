package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a media post stored in MongoDB. The set of liking account ids is
// kept in Redis and merged into the response at read time.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Body      string             `json:"body" bson:"body"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// PostWithAuthor is a post enriched with its author and like set for responses
type PostWithAuthor struct {
	Post
	User     *User    `json:"user"`
	LikedIDs []string `json:"likedIds"`
}
