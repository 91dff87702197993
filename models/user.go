package models

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
	UserDeleted   UserStatus = "deleted"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the public account record. Credentials live in Auth.
type User struct {
	ID        string     `bson:"id" json:"id"`
	FirstName string     `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string     `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Email     string     `bson:"email" json:"email"`
	Phone     string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Location  string     `bson:"location,omitempty" json:"location,omitempty"`
	Status    UserStatus `bson:"status" json:"status"`
	Role      Role       `bson:"role" json:"role"`
	FCMToken  string     `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// Auth holds a user's credentials, one-to-one with User.
type Auth struct {
	ID                 string     `bson:"id"`
	UserID             string     `bson:"user_id"`
	HashedPassword     string     `bson:"hashed_password"`
	HashedRefreshToken string     `bson:"hashed_refresh_token,omitempty"`
	DeletedAt          *time.Time `bson:"deleted_at,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type DeviceRequest struct {
	FCMToken string `json:"fcmToken" binding:"required"`
}

// AuthResponse is returned by login and token refresh.
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
