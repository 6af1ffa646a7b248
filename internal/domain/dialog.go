package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dialog is a user-owned branching quiz tree. VoteScore is derived from the
// dialog's Vote rows and recomputed in full after every vote mutation; it is
// never adjusted incrementally.
type Dialog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	VoteScore   int       `gorm:"not null;default:0;column:vote_score" json:"vote_score"`
	OwnerID     uuid.UUID `gorm:"index;not null;column:owner_id" json:"owner"`
	Owner       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Dialog) TableName() string { return "dialog" }

// Vote records one user's up/down vote on a dialog. At most one row exists
// per (user, dialog) pair; the vote service enforces this, not the schema.
type Vote struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"index;not null;column:user_id" json:"user"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	DialogID uuid.UUID `gorm:"index;not null;column:dialog_id" json:"dialog"`
	Dialog   *Dialog   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DialogID;references:ID" json:"-"`
	VoteType int       `gorm:"not null;column:vote_type" json:"vote_type"`
}

func (Vote) TableName() string { return "vote" }

const (
	VoteUp   = 1
	VoteDown = -1
)
