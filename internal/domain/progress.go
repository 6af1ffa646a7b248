package domain

import (
	"github.com/google/uuid"
)

// UserAnswer is the append-only audit trail of answers a user has picked.
// Rows are never mutated after creation.
type UserAnswer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"index;not null;column:user_id" json:"user"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AnswerID uuid.UUID `gorm:"index;not null;column:answer_id" json:"answer"`
	Answer   *Answer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AnswerID;references:ID" json:"-"`
}

func (UserAnswer) TableName() string { return "user_answer" }

// UserDialogQuestion is a user's traversal cursor: the question they are
// currently on within a dialog. Logically one cursor per (user, dialog),
// though the schema does not enforce it.
type UserDialogQuestion struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"index;not null;column:user_id" json:"user"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	DialogID   uuid.UUID `gorm:"index;not null;column:dialog_id" json:"dialog"`
	Dialog     *Dialog   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DialogID;references:ID" json:"-"`
	QuestionID uuid.UUID `gorm:"index;not null;column:question_id" json:"question"`
	Question   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"-"`
}

func (UserDialogQuestion) TableName() string { return "user_dialog_question" }
