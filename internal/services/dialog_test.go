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
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
)

func newDialogService(t *testing.T, db *gorm.DB) DialogService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewDialogService(db, log,
		dialogrepo.NewDialogRepo(db, log),
		dialogrepo.NewVoteRepo(db, log),
		dialogrepo.NewQuestionRepo(db, log),
		dialogrepo.NewAnswerRepo(db, log),
		progressrepo.NewUserAnswerRepo(db, log),
		progressrepo.NewUserDialogQuestionRepo(db, log),
		userrepo.NewUserRepo(db, log),
	)
}

func tableCount(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestDialogCreate_DefaultsOwnerToPrincipal(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")

	dialog, err := svc.Create(testutil.PrincipalContext(alice), DialogCreateInput{Title: "Basics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dialog.OwnerID != alice.ID {
		t.Fatalf("expected owner %s, got %s", alice.ID, dialog.OwnerID)
	}
	if dialog.VoteScore != 0 {
		t.Fatalf("expected zero initial score, got %d", dialog.VoteScore)
	}
}

func TestDialogCreate_RequiresTitle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")

	_, err := svc.Create(testutil.PrincipalContext(alice), DialogCreateInput{Title: "   "})
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if got := apiErr.Fields["title"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("unexpected title errors: %v", got)
	}
}

func TestDialogCreate_RejectsUnknownOwner(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	nobody := uuid.New()

	_, err := svc.Create(testutil.PrincipalContext(alice), DialogCreateInput{Title: "Basics", Owner: &nobody})
	apiErr := apierr.From(err)
	if apiErr == nil || len(apiErr.Fields["owner"]) == 0 {
		t.Fatalf("expected owner field error, got %v", err)
	}
}

func TestDialogUpdate_PartialFields(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")

	desc := "updated description"
	updated, err := svc.Update(testutil.PrincipalContext(alice), dialog.ID, DialogUpdateInput{Description: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != desc {
		t.Fatalf("description not applied: %q", updated.Description)
	}
	if updated.Title != "Basics" {
		t.Fatalf("title should be untouched, got %q", updated.Title)
	}
}

func TestDialogDelete_CascadesWholeSubtree(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	other := testutil.CreateDialog(t, db, alice, "Untouched")

	q1 := testutil.CreateQuestion(t, db, dialog, "How do you greet?")
	q2 := testutil.CreateQuestion(t, db, dialog, "How do you part?")
	answer := testutil.CreateAnswer(t, db, q1, q2, "Salam")
	testutil.CreateVote(t, db, alice, dialog, types.VoteUp)

	if err := db.Create(&types.UserAnswer{ID: uuid.New(), UserID: alice.ID, AnswerID: answer.ID}).Error; err != nil {
		t.Fatalf("seed user answer: %v", err)
	}
	if err := db.Create(&types.UserDialogQuestion{ID: uuid.New(), UserID: alice.ID, DialogID: dialog.ID, QuestionID: q1.ID}).Error; err != nil {
		t.Fatalf("seed cursor: %v", err)
	}

	otherQ := testutil.CreateQuestion(t, db, other, "Still here?")

	if err := svc.Delete(testutil.PrincipalContext(alice), dialog.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, tc := range []struct {
		name  string
		model any
		want  int64
	}{
		{"dialogs", &types.Dialog{}, 1},
		{"questions", &types.Question{}, 1},
		{"answers", &types.Answer{}, 0},
		{"votes", &types.Vote{}, 0},
		{"user answers", &types.UserAnswer{}, 0},
		{"cursors", &types.UserDialogQuestion{}, 0},
	} {
		if got := tableCount(t, db, tc.model); got != tc.want {
			t.Fatalf("%s: expected %d rows left, got %d", tc.name, tc.want, got)
		}
	}

	// The sibling dialog and its question survive.
	var q types.Question
	if err := db.First(&q, "id = ?", otherQ.ID).Error; err != nil {
		t.Fatalf("sibling question should survive: %v", err)
	}
}

func TestDialogDelete_UnknownNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newDialogService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")

	err := svc.Delete(testutil.PrincipalContext(alice), uuid.New())
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
