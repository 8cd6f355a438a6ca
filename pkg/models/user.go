package models

import (
	"time"
)

// User is the local profile row for an account issued by the identity
// provider. The primary key is the provider UID, not a generated id.
type User struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(128)"`
	Username            string    `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	Email               string    `json:"email" gorm:"type:varchar(255);not null;index"`
	Age                 int       `json:"age" gorm:"not null"`
	ComplimentsReceived int       `json:"compliments_received" gorm:"not null;default:0"`
	AvatarURL           *string   `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// RegisterRequest is the signup payload. The password is forwarded to the
// identity provider and never stored locally.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Age      int    `json:"age"`
}

// MemberView is the directory projection of a User. Color is derived, not
// stored: the same UID always maps to the same palette entry.
type MemberView struct {
	ID                  string  `json:"id"`
	Username            string  `json:"username"`
	JoinedAgo           string  `json:"joined_ago"`
	ComplimentsReceived int     `json:"compliments_received"`
	Color               string  `json:"color"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
}

// DirectoryStats are the aggregate figures shown under the member grid.
type DirectoryStats struct {
	TotalMembers     int `json:"total_members"`
	TotalCompliments int `json:"total_compliments"`
	AveragePerMember int `json:"average_per_member"`
}
