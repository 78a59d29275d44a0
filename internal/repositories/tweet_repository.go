package repositories

import (
	"context"
	"time"

	"github.com/chirpnet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetAllTweets(ctx context.Context) ([]models.Tweet, error)
	GetTweetsByUserID(ctx context.Context, userID string) ([]models.Tweet, error)
}

// MongoTweetRepository implements TweetRepository for MongoDB
type MongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new MongoTweetRepository
func NewMongoTweetRepository(db *mongo.Database) *MongoTweetRepository {
	return &MongoTweetRepository{collection: db.Collection("tweets")}
}

// CreateTweet creates a new tweet in MongoDB
func (r *MongoTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tweet)
	return err
}

// GetAllTweets retrieves all tweets, most recent first
func (r *MongoTweetRepository) GetAllTweets(ctx context.Context) ([]models.Tweet, error) {
	return r.findTweets(ctx, bson.M{})
}

// GetTweetsByUserID retrieves a user's tweets, most recent first
func (r *MongoTweetRepository) GetTweetsByUserID(ctx context.Context, userID string) ([]models.Tweet, error) {
	return r.findTweets(ctx, bson.M{"user_id": userID})
}

func (r *MongoTweetRepository) findTweets(ctx context.Context, filter bson.M) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}
