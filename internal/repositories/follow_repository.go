package repositories

import (
	"github.com/chirpnet/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	ToggleFollow(followerID, followingID string) (bool, error)
	IsFollowing(followerID, followingID string) (bool, error)
	GetFollowers(userID string) ([]models.User, error)
	GetFollowing(userID string) ([]models.User, error)
	GetFollowerIDs(userID string) ([]string, error)
	GetFollowingIDs(userID string) ([]string, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// ToggleFollow flips the directed edge follower -> following and reports the
// resulting state. The delete and the conflict-ignoring insert are each a
// single statement against the unique (follower_id, following_id) index, so
// two racing toggles can never produce a duplicate edge: the loser of an
// insert race hits the index and still observes following=true.
func (r *PostgresFollowRepository) ToggleFollow(followerID, followingID string) (bool, error) {
	var nowFollowing bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			nowFollowing = false
			return nil
		}

		follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
			return err
		}
		nowFollowing = true
		return nil
	})
	return nowFollowing, err
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowerIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
