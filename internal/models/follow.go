package models

import "time"

// Follow is one directed edge of the follow graph. The composite unique index
// makes a duplicate edge unrepresentable, so both the following and followers
// projections are always derived from the same rows.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"following_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
