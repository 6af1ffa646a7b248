package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	"github.com/tatarby/backend/internal/data/repos/testutil"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	"github.com/tatarby/backend/internal/pkg/apierr"
)

func newUserAnswerService(t *testing.T, db *gorm.DB) UserAnswerService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewUserAnswerService(db, log,
		progressrepo.NewUserAnswerRepo(db, log),
		dialogrepo.NewAnswerRepo(db, log),
		userrepo.NewUserRepo(db, log),
	)
}

func newCursorService(t *testing.T, db *gorm.DB) CursorService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewCursorService(db, log,
		progressrepo.NewUserDialogQuestionRepo(db, log),
		dialogrepo.NewDialogRepo(db, log),
		dialogrepo.NewQuestionRepo(db, log),
		userrepo.NewUserRepo(db, log),
	)
}

func TestUserAnswerCreate_DefaultsToPrincipal(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	answer := testutil.CreateAnswer(t, db, q1, q2, "Salam")

	row, err := svc.Create(testutil.PrincipalContext(alice), UserAnswerCreateInput{Answer: &answer.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.UserID != alice.ID {
		t.Fatalf("expected user %s, got %s", alice.ID, row.UserID)
	}
}

func TestUserAnswerCreate_RejectsUnknownAnswer(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newUserAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	nobody := uuid.New()

	_, err := svc.Create(testutil.PrincipalContext(alice), UserAnswerCreateInput{Answer: &nobody})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if got := apiErr.Fields["answer"]; len(got) != 1 || got[0] != "Invalid pk - object does not exist." {
		t.Fatalf("unexpected answer errors: %v", got)
	}
}

func TestCursorCreate_ValidatesRefs(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newCursorService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	question := testutil.CreateQuestion(t, db, dialog, "one")

	ctx := testutil.PrincipalContext(alice)
	cursor, err := svc.Create(ctx, CursorCreateInput{Dialog: &dialog.ID, Question: &question.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cursor.UserID != alice.ID {
		t.Fatalf("expected principal as user, got %s", cursor.UserID)
	}

	missing := uuid.New()
	_, err = svc.Create(ctx, CursorCreateInput{Dialog: &missing, Question: &question.ID})
	apiErr := apierr.From(err)
	if apiErr == nil || len(apiErr.Fields["dialog"]) == 0 {
		t.Fatalf("expected dialog field error, got %v", err)
	}
}

func TestCursorUpdate_MovesToNextQuestion(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newCursorService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")

	ctx := testutil.PrincipalContext(alice)
	cursor, err := svc.Create(ctx, CursorCreateInput{Dialog: &dialog.ID, Question: &q1.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := svc.Update(ctx, cursor.ID, CursorUpdateInput{Question: &q2.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.QuestionID != q2.ID {
		t.Fatalf("expected cursor on q2, got %s", moved.QuestionID)
	}
	if moved.DialogID != dialog.ID {
		t.Fatalf("dialog should be unchanged")
	}
}
