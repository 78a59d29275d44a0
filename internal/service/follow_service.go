package service

import (
	"errors"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FollowService owns the follow-toggle contract: for any two accounts A and B,
// B is in A's following list exactly when A is in B's followers list. Both
// lists are projections of the same edge rows, so the invariant cannot be
// broken by a partial write.
type FollowService struct {
	logger     *zap.Logger
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(logger *zap.Logger, followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowService {
	return &FollowService{
		logger:     logger,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle flips the follow edge from caller to target and returns the new
// state. The caller must be an existing account; a missing caller record means
// the session is stale and is reported as ErrUserNotFound. The target is not
// required to exist: following a deleted account is harmless because both
// derived lists read the same edge rows.
func (s *FollowService) Toggle(callerID, targetID string) (bool, error) {
	if targetID == "" {
		return false, ErrTargetRequired
	}
	if targetID == callerID {
		return false, ErrSelfFollow
	}

	if _, err := s.userRepo.GetUserByID(callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		s.logger.Error("failed to load caller account", zap.String("caller_id", callerID), zap.Error(err))
		return false, err
	}

	nowFollowing, err := s.followRepo.ToggleFollow(callerID, targetID)
	if err != nil {
		s.logger.Error("failed to toggle follow edge",
			zap.String("caller_id", callerID),
			zap.String("target_id", targetID),
			zap.Error(err))
		return false, err
	}

	return nowFollowing, nil
}

// Profile merges the derived follow id lists into the full user payload.
func (s *FollowService) Profile(user *models.User) (*models.UserProfile, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(user.ID)
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.followRepo.GetFollowerIDs(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		User:         *user,
		FollowingIDs: followingIDs,
		FollowerIDs:  followerIDs,
	}, nil
}

// Summarize builds the account projection used by the followers/following
// listings, with both id lists derived from the edge table.
func (s *FollowService) Summarize(user *models.User) (*models.AccountSummary, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(user.ID)
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.followRepo.GetFollowerIDs(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AccountSummary{
		ID:           user.ID,
		Name:         user.Name,
		Username:     user.Username,
		Image:        user.Image,
		ProfileImage: user.ProfileImage,
		FollowingIDs: followingIDs,
		FollowerIDs:  followerIDs,
	}, nil
}

// Followers returns summaries of every account following the given handle.
func (s *FollowService) Followers(username string) ([]models.AccountSummary, error) {
	return s.listRelated(username, s.followRepo.GetFollowers)
}

// Following returns summaries of every account the given handle follows.
func (s *FollowService) Following(username string) ([]models.AccountSummary, error) {
	return s.listRelated(username, s.followRepo.GetFollowing)
}

func (s *FollowService) listRelated(username string, related func(string) ([]models.User, error)) ([]models.AccountSummary, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	users, err := related(user.ID)
	if err != nil {
		return nil, err
	}

	summaries := []models.AccountSummary{}
	for i := range users {
		summary, err := s.Summarize(&users[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}
