package user

import (
	"strings"
	"time"

	"employee-register/internal/rbac"

	"github.com/google/uuid"
)

const DefaultRole = rbac.RoleUser

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex:uq_users_username"`
	Password  string    `gorm:"column:password;type:text;not null"`
	Email     *string   `gorm:"column:email;type:varchar(255);uniqueIndex:uq_users_email"`
	Role      string    `gorm:"column:role;type:varchar(32);not null;default:USER"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// EmailAddress returns the stored email or an empty string.
func (u User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// NormalizeRole upper-cases role and falls back to DefaultRole when blank.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		return DefaultRole
	}
	return role
}

func ValidRole(role string) bool {
	return role == rbac.RoleAdmin || role == rbac.RoleUser
}
