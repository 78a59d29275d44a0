package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// LikeRepository defines the interface for post like-set operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	GetLikerIDs(ctx context.Context, postID string) ([]string, error)
}

// RedisLikeRepository keeps per-post like sets in Redis. SADD/SREM are atomic
// set operations, so concurrent like toggles on the same post cannot create
// duplicate entries.
type RedisLikeRepository struct {
	rdb *redis.Client
}

// NewRedisLikeRepository creates a new RedisLikeRepository
func NewRedisLikeRepository(rdb *redis.Client) *RedisLikeRepository {
	return &RedisLikeRepository{rdb: rdb}
}

func likeKey(postID string) string {
	return "posts:likes:" + postID
}

// ToggleLike adds the user to the post's like set, or removes them if the add
// was a no-op because they were already a member. Returns the new state.
func (r *RedisLikeRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	added, err := r.rdb.SAdd(ctx, likeKey(postID), userID).Result()
	if err != nil {
		return false, err
	}
	if added == 0 {
		if _, err := r.rdb.SRem(ctx, likeKey(postID), userID).Result(); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// GetLikerIDs returns the ids of all accounts that liked the post
func (r *RedisLikeRepository) GetLikerIDs(ctx context.Context, postID string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, likeKey(postID)).Result()
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
