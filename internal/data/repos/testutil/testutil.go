// Package testutil provides the shared sqlite-backed fixtures used by the
// repo and service tests.
package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
	"github.com/tatarby/backend/internal/requestdata"
)

// NewLogger returns a logger suitable for tests.
func NewLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

// NewDB opens an in-memory sqlite database and migrates the full schema.
// Connections are capped at one so every query sees the same memory store.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Dialog{},
		&types.Vote{},
		&types.Question{},
		&types.Answer{},
		&types.UserAnswer{},
		&types.UserDialogQuestion{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// PrincipalContext returns a context carrying the given user as the
// authenticated principal.
func PrincipalContext(user *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID: user.ID,
		User:   user,
	})
}

func CreateUser(t *testing.T, db *gorm.DB, email string) *types.User {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "hashed-password",
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateDialog(t *testing.T, db *gorm.DB, owner *types.User, title string) *types.Dialog {
	t.Helper()
	dialog := &types.Dialog{
		ID:      uuid.New(),
		Title:   title,
		OwnerID: owner.ID,
	}
	if err := db.Create(dialog).Error; err != nil {
		t.Fatalf("create dialog: %v", err)
	}
	return dialog
}

func CreateQuestion(t *testing.T, db *gorm.DB, dialog *types.Dialog, content string) *types.Question {
	t.Helper()
	question := &types.Question{
		ID:       uuid.New(),
		DialogID: dialog.ID,
		Content:  content,
		Initial:  true,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}

func CreateAnswer(t *testing.T, db *gorm.DB, question, next *types.Question, content string) *types.Answer {
	t.Helper()
	answer := &types.Answer{
		ID:             uuid.New(),
		QuestionID:     question.ID,
		Content:        content,
		NextQuestionID: next.ID,
	}
	if err := db.Create(answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}

func CreateVote(t *testing.T, db *gorm.DB, user *types.User, dialog *types.Dialog, voteType int) *types.Vote {
	t.Helper()
	vote := &types.Vote{
		ID:       uuid.New(),
		UserID:   user.ID,
		DialogID: dialog.ID,
		VoteType: voteType,
	}
	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("create vote: %v", err)
	}
	return vote
}
