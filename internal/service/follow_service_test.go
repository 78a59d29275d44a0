package service

import (
	"sync"
	"testing"

	"github.com/chirpnet/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type edge struct {
	follower  string
	following string
}

// fakeFollowRepo mirrors the edge-table semantics: one row per directed edge,
// duplicate edges unrepresentable, toggle serialized per repository.
type fakeFollowRepo struct {
	mu    sync.Mutex
	edges map[edge]bool
	users *fakeUserRepo
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[edge]bool), users: users}
}

func (f *fakeFollowRepo) ToggleFollow(followerID, followingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := edge{followerID, followingID}
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
	return f.edges[edge{followerID, followingID}], nil
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

func newTestFollowService() (*FollowService, *fakeFollowRepo, *fakeUserRepo) {
	users := newFakeUserRepo(
		&models.User{ID: "u1", Username: "alice", Name: "Alice"},
		&models.User{ID: "u2", Username: "bob", Name: "Bob"},
		&models.User{ID: "u3", Username: "carol", Name: "Carol"},
	)
	follows := newFakeFollowRepo(users)
	return NewFollowService(zap.NewNop(), follows, users), follows, users
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func countOf(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func TestFollowService_Toggle(t *testing.T) {
	t.Run("follow then unfollow round trip", func(t *testing.T) {
		svc, follows, _ := newTestFollowService()

		following, err := svc.Toggle("u1", "u2")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if !following {
			t.Error("first toggle = false, want true")
		}

		aliceFollowing, _ := follows.GetFollowingIDs("u1")
		bobFollowers, _ := follows.GetFollowerIDs("u2")
		if !contains(aliceFollowing, "u2") {
			t.Error("u2 missing from alice's following list")
		}
		if !contains(bobFollowers, "u1") {
			t.Error("u1 missing from bob's followers list")
		}

		following, err = svc.Toggle("u1", "u2")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if following {
			t.Error("second toggle = true, want false")
		}

		aliceFollowing, _ = follows.GetFollowingIDs("u1")
		bobFollowers, _ = follows.GetFollowerIDs("u2")
		if len(aliceFollowing) != 0 || len(bobFollowers) != 0 {
			t.Errorf("lists not empty after unfollow: following=%v followers=%v", aliceFollowing, bobFollowers)
		}
	})

	t.Run("serialized double toggle never reports true twice", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		first, err := svc.Toggle("u1", "u2")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		second, err := svc.Toggle("u1", "u2")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if first != true || second != false {
			t.Errorf("toggle sequence = (%v, %v), want (true, false)", first, second)
		}
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		svc, follows, _ := newTestFollowService()

		_, err := svc.Toggle("u1", "u1")
		if err != ErrSelfFollow {
			t.Errorf("Toggle(u1, u1) = %v, want ErrSelfFollow", err)
		}
		if len(follows.edges) != 0 {
			t.Error("self follow created an edge")
		}
	})

	t.Run("missing target id is rejected", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		_, err := svc.Toggle("u1", "")
		if err != ErrTargetRequired {
			t.Errorf("Toggle(u1, \"\") = %v, want ErrTargetRequired", err)
		}
	})

	t.Run("unknown caller is reported as not found", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		_, err := svc.Toggle("ghost", "u2")
		if err != ErrUserNotFound {
			t.Errorf("Toggle(ghost, u2) = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("nonexistent target is not an error", func(t *testing.T) {
		svc, follows, _ := newTestFollowService()

		following, err := svc.Toggle("u1", "deleted-user")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if !following {
			t.Error("toggle against missing target = false, want true")
		}

		// Both derived views still agree
		aliceFollowing, _ := follows.GetFollowingIDs("u1")
		ghostFollowers, _ := follows.GetFollowerIDs("deleted-user")
		if !contains(aliceFollowing, "deleted-user") || !contains(ghostFollowers, "u1") {
			t.Error("derived lists disagree for missing target")
		}
	})
}

func TestFollowService_BidirectionalInvariant(t *testing.T) {
	svc, follows, _ := newTestFollowService()

	// Arbitrary toggle sequence over three accounts
	sequence := []edge{
		{"u1", "u2"}, {"u2", "u1"}, {"u1", "u3"},
		{"u3", "u2"}, {"u1", "u2"}, {"u2", "u3"},
		{"u1", "u2"}, {"u3", "u2"}, {"u3", "u1"},
	}
	for _, s := range sequence {
		if _, err := svc.Toggle(s.follower, s.following); err != nil {
			t.Fatalf("Toggle(%s, %s): %v", s.follower, s.following, err)
		}
	}

	ids := []string{"u1", "u2", "u3"}
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			aFollowing, _ := follows.GetFollowingIDs(a)
			bFollowers, _ := follows.GetFollowerIDs(b)
			if contains(aFollowing, b) != contains(bFollowers, a) {
				t.Errorf("invariant broken for (%s, %s): %v vs %v", a, b, aFollowing, bFollowers)
			}
		}
	}
}

func TestFollowService_ConcurrentTogglesNoDuplicates(t *testing.T) {
	svc, follows, _ := newTestFollowService()

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Toggle("u1", "u2"); err != nil {
				t.Errorf("Toggle: %v", err)
			}
		}()
	}
	wg.Wait()

	aliceFollowing, _ := follows.GetFollowingIDs("u1")
	if n := countOf(aliceFollowing, "u2"); n > 1 {
		t.Errorf("u2 appears %d times in following list, want at most 1", n)
	}
	// Even number of toggles must land back on not-following
	if contains(aliceFollowing, "u2") {
		t.Errorf("after %d toggles still following, want not following", workers)
	}
}

func TestFollowService_Listings(t *testing.T) {
	t.Run("unknown handle reports not found", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		if _, err := svc.Followers("nobody"); err != ErrUserNotFound {
			t.Errorf("Followers(nobody) = %v, want ErrUserNotFound", err)
		}
		if _, err := svc.Following("nobody"); err != ErrUserNotFound {
			t.Errorf("Following(nobody) = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("followers returns exactly the following accounts", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		// bob and carol follow alice
		if _, err := svc.Toggle("u2", "u1"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if _, err := svc.Toggle("u3", "u1"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}

		summaries, err := svc.Followers("alice")
		if err != nil {
			t.Fatalf("Followers: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("len(summaries) = %d, want 2", len(summaries))
		}
		got := map[string]bool{}
		for _, s := range summaries {
			got[s.ID] = true
			if !contains(s.FollowingIDs, "u1") {
				t.Errorf("summary %s missing u1 in followingIds", s.ID)
			}
		}
		if !got["u2"] || !got["u3"] {
			t.Errorf("followers = %v, want u2 and u3", got)
		}
	})

	t.Run("following lists carry derived follower ids", func(t *testing.T) {
		svc, _, _ := newTestFollowService()

		if _, err := svc.Toggle("u1", "u2"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}

		summaries, err := svc.Following("alice")
		if err != nil {
			t.Fatalf("Following: %v", err)
		}
		if len(summaries) != 1 || summaries[0].ID != "u2" {
			t.Fatalf("summaries = %+v, want exactly bob", summaries)
		}
		if !contains(summaries[0].FollowerIDs, "u1") {
			t.Error("bob's summary missing u1 in followerIds")
		}
	})
}
