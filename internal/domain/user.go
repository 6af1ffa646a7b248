package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the account model. Email is the login identifier and is stored
// lowercased. Password holds the bcrypt hash and never serializes.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password     string     `gorm:"not null;column:password" json:"-"`
	FirstName    string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName     string     `gorm:"not null;column:last_name" json:"last_name"`
	XPScore      int        `gorm:"not null;default:0;column:xp_score" json:"xp_score"`
	Streak       uint       `gorm:"not null;default:0;column:streak" json:"streak"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsStaff      bool       `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
	DateJoined   time.Time  `gorm:"column:date_joined;autoCreateTime" json:"date_joined"`
	LastActionAt *time.Time `gorm:"column:last_action_at" json:"last_action_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) ShortName() string {
	return u.FirstName
}
