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

func newAnswerService(t *testing.T, db *gorm.DB) AnswerService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewAnswerService(db, log,
		dialogrepo.NewAnswerRepo(db, log),
		dialogrepo.NewQuestionRepo(db, log),
		progressrepo.NewUserAnswerRepo(db, log),
	)
}

func TestAnswerCreate_RequiresBothEndpoints(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newAnswerService(t, db)

	_, err := svc.Create(context.Background(), AnswerCreateInput{Content: "dangling"})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	for _, field := range []string{"question", "next_question"} {
		if got := apiErr.Fields[field]; len(got) != 1 || got[0] != "This field is required." {
			t.Fatalf("field %q: unexpected errors %v", field, got)
		}
	}
}

func TestAnswerCreate_AllowsCycles(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")

	ctx := context.Background()
	forward, err := svc.Create(ctx, AnswerCreateInput{Question: &q1.ID, NextQuestion: &q2.ID, Content: "on"})
	if err != nil {
		t.Fatalf("forward edge: %v", err)
	}
	back, err := svc.Create(ctx, AnswerCreateInput{Question: &q2.ID, NextQuestion: &q1.ID, Content: "back"})
	if err != nil {
		t.Fatalf("back edge: %v", err)
	}
	if forward.NextQuestionID != back.QuestionID || back.NextQuestionID != forward.QuestionID {
		t.Fatalf("cycle endpoints do not line up")
	}

	// A self loop is fine too.
	if _, err := svc.Create(ctx, AnswerCreateInput{Question: &q1.ID, NextQuestion: &q1.ID, Content: "again"}); err != nil {
		t.Fatalf("self loop: %v", err)
	}
}

func TestAnswerCreate_AllowsCrossDialogEdges(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	d1 := testutil.CreateDialog(t, db, alice, "Basics")
	d2 := testutil.CreateDialog(t, db, alice, "Advanced")
	q1 := testutil.CreateQuestion(t, db, d1, "one")
	q2 := testutil.CreateQuestion(t, db, d2, "two")

	answer, err := svc.Create(context.Background(), AnswerCreateInput{Question: &q1.ID, NextQuestion: &q2.ID, Content: "jump"})
	if err != nil {
		t.Fatalf("cross-dialog edge: %v", err)
	}
	if answer.NextQuestionID != q2.ID {
		t.Fatalf("unexpected next question %s", answer.NextQuestionID)
	}
}

func TestAnswerUpdate_Value(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	answer := testutil.CreateAnswer(t, db, q1, q2, "Salam")

	value := 5
	updated, err := svc.Update(context.Background(), answer.ID, AnswerUpdateInput{Value: &value})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != 5 {
		t.Fatalf("expected value 5, got %d", updated.Value)
	}
	if updated.Content != "Salam" {
		t.Fatalf("content should be untouched, got %q", updated.Content)
	}
}

func TestAnswerDelete_DropsHistoryRows(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newAnswerService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	answer := testutil.CreateAnswer(t, db, q1, q2, "Salam")

	if err := db.Create(&types.UserAnswer{ID: uuid.New(), UserID: alice.ID, AnswerID: answer.ID}).Error; err != nil {
		t.Fatalf("seed user answer: %v", err)
	}

	if err := svc.Delete(context.Background(), answer.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var n int64
	db.Model(&types.UserAnswer{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected history rows gone, %d left", n)
	}
	db.Model(&types.Answer{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected answer gone, %d left", n)
	}
}
