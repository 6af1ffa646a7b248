package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	"github.com/tatarby/backend/internal/data/repos/testutil"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
)

func newQuestionService(t *testing.T, db *gorm.DB) QuestionService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewQuestionService(db, log,
		dialogrepo.NewQuestionRepo(db, log),
		dialogrepo.NewAnswerRepo(db, log),
		dialogrepo.NewDialogRepo(db, log),
		progressrepo.NewUserAnswerRepo(db, log),
		progressrepo.NewUserDialogQuestionRepo(db, log),
	)
}

func TestQuestionCreate_DefaultsInitialTrue(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuestionService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")

	question, err := svc.Create(context.Background(), QuestionCreateInput{
		Dialog:  &dialog.ID,
		Content: "How do you greet?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !question.Initial {
		t.Fatalf("expected initial to default to true")
	}
}

func TestQuestionCreate_ValidatesDialogRef(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuestionService(t, db)
	nobody := uuid.New()

	_, err := svc.Create(context.Background(), QuestionCreateInput{
		Dialog:  &nobody,
		Content: "orphan",
	})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if got := apiErr.Fields["dialog"]; len(got) != 1 || got[0] != "Invalid pk - object does not exist." {
		t.Fatalf("unexpected dialog errors: %v", got)
	}
}

func TestQuestionDelete_RemovesInboundAndOutboundEdges(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuestionService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")

	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	q3 := testutil.CreateQuestion(t, db, dialog, "three")
	outbound := testutil.CreateAnswer(t, db, q2, q3, "leaves q2")
	inbound := testutil.CreateAnswer(t, db, q1, q2, "leads to q2")
	unrelated := testutil.CreateAnswer(t, db, q1, q3, "skips q2")

	if err := db.Create(&types.UserAnswer{ID: uuid.New(), UserID: alice.ID, AnswerID: inbound.ID}).Error; err != nil {
		t.Fatalf("seed user answer: %v", err)
	}
	if err := db.Create(&types.UserDialogQuestion{ID: uuid.New(), UserID: alice.ID, DialogID: dialog.ID, QuestionID: q2.ID}).Error; err != nil {
		t.Fatalf("seed cursor: %v", err)
	}

	if err := svc.Delete(context.Background(), q2.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	db.Model(&types.Answer{}).Where("id IN ?", []uuid.UUID{outbound.ID, inbound.ID}).Count(&n)
	if n != 0 {
		t.Fatalf("expected edges touching q2 gone, %d left", n)
	}
	if err := db.First(&types.Answer{}, "id = ?", unrelated.ID).Error; err != nil {
		t.Fatalf("unrelated answer should survive: %v", err)
	}
	db.Model(&types.UserAnswer{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected history rows gone, %d left", n)
	}
	db.Model(&types.UserDialogQuestion{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected cursors on q2 gone, %d left", n)
	}
}

func TestQuestionDelete_UnknownNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newQuestionService(t, db)

	err := svc.Delete(context.Background(), uuid.New())
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
