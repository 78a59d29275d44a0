package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet is a plain text status update stored in MongoDB
type Tweet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateTweetRequest defines the request body for creating a new tweet
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// TweetWithAuthor is a tweet joined with its author for listing responses
type TweetWithAuthor struct {
	Tweet
	User *User `json:"user"`
}
