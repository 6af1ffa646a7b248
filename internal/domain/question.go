package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is a node in a dialog's branching tree. Initial marks the entry
// points of the tree.
type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DialogID  uuid.UUID `gorm:"index;not null;column:dialog_id" json:"dialog"`
	Dialog    *Dialog   `gorm:"constraint:OnDelete:CASCADE;foreignKey:DialogID;references:ID" json:"-"`
	Content   string    `gorm:"not null;column:content" json:"content"`
	Initial   bool      `gorm:"not null;default:true;column:initial" json:"initial"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string { return "question" }

// Answer is a directed edge in the question graph: it answers Question and
// leads to NextQuestion. Edges may cross dialogs and may form cycles; nothing
// here assumes acyclicity. Value is the scoring weight of picking the answer.
type Answer struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID     uuid.UUID `gorm:"index;not null;column:question_id" json:"question"`
	Question       *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"-"`
	Content        string    `gorm:"not null;column:content" json:"content"`
	NextQuestionID uuid.UUID `gorm:"index;not null;column:next_question_id" json:"next_question"`
	NextQuestion   *Question `gorm:"constraint:OnDelete:CASCADE;foreignKey:NextQuestionID;references:ID" json:"-"`
	Value          int       `gorm:"not null;default:0;column:value" json:"value"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Answer) TableName() string { return "answer" }
