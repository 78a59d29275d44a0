package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"` // Immutable handle, unique across all users
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	HashedPassword string    `json:"-"` // Store bcrypt hash, ignore for JSON serialization
	FirebaseUID    string    `json:"firebase_uid,omitempty" gorm:"index"`
	Image          string    `json:"image,omitempty"`
	ProfileImage   string    `json:"profileImage,omitempty"`
	CoverImage     string    `json:"coverImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key before the insert runs.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserProfile is a user with the derived follow id lists merged in. Every
// endpoint that serializes a full account serves this shape so clients can
// render follow counts and follow state.
type UserProfile struct {
	User
	FollowingIDs []string `json:"followingIds"`
	FollowerIDs  []string `json:"followerIds"`
}

// AccountSummary is the projection returned by the followers/following listings.
type AccountSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Username     string   `json:"username"`
	Image        string   `json:"image,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	FollowingIDs []string `json:"followingIds"`
	FollowerIDs  []string `json:"followerIds"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type EditProfileRequest struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
