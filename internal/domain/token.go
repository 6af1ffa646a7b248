package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserToken is the single reusable bearer credential for a user. It is
// created lazily on first login or registration and deleted on logout;
// repeated logins hand back the same row.
type UserToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"index;not null;column:user_id" json:"user"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Token     string    `gorm:"uniqueIndex;not null;column:token" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }
