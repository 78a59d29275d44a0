package handlers

import (
	"context"
	"io"
	"sync"

	"github.com/chirpnet/backend/internal/models"
	"gorm.io/gorm"
)

type edgeKey struct {
	follower  string
	following string
}

type fakeFollowRepo struct {
	mu    sync.Mutex
	edges map[edgeKey]bool
	users *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[edgeKey]bool), users: users}
}

func (f *fakeFollowRepo) ToggleFollow(followerID, followingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := edgeKey{followerID, followingID}
	if f.edges[e] {
		delete(f.edges, e)
		return false, nil
	}
	f.edges[e] = true
	return true, nil
}

func (f *fakeFollowRepo) IsFollowing(followerID, followingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edges[edgeKey{followerID, followingID}], nil
}

func (f *fakeFollowRepo) GetFollowers(userID string) ([]models.User, error) {
	ids, _ := f.GetFollowerIDs(userID)
	return f.users.usersFor(ids), nil
}

func (f *fakeFollowRepo) GetFollowing(userID string) ([]models.User, error) {
	ids, _ := f.GetFollowingIDs(userID)
	return f.users.usersFor(ids), nil
}

func (f *fakeFollowRepo) GetFollowerIDs(userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for e := range f.edges {
		if e.following == userID {
			ids = append(ids, e.follower)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) GetFollowingIDs(userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := []string{}
	for e := range f.edges {
		if e.follower == userID {
			ids = append(ids, e.following)
		}
	}
	return ids, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (f *fakeUserRepo) usersFor(ids []string) []models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetRecentUsers(excludeUsername string, limit int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.users {
		if u.Username != excludeUsername && len(out) < limit {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets []models.Tweet
}

func (f *fakeTweetRepo) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tweets = append(f.tweets, *tweet)
	return nil
}

func (f *fakeTweetRepo) GetAllTweets(ctx context.Context) ([]models.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Tweet{}, f.tweets...), nil
}

func (f *fakeTweetRepo) GetTweetsByUserID(ctx context.Context, userID string) ([]models.Tweet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Tweet{}
	for _, tw := range f.tweets {
		if tw.UserID == userID {
			out = append(out, tw)
		}
	}
	return out, nil
}

type fakeBlobStore struct {
	name        string
	contentType string
	calls       int
}

func (f *fakeBlobStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	f.name = name
	f.contentType = contentType
	f.calls++
	return "http://blobs.local/uploads/" + name, nil
}
