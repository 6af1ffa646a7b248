package dialog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tatarby/backend/internal/data/repos/testutil"
	types "github.com/tatarby/backend/internal/domain"
)

func TestAnswerRepo_IDsByQuestionIDs_MatchesEitherEndpoint(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAnswerRepo(db, testutil.NewLogger(t))
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	q3 := testutil.CreateQuestion(t, db, dialog, "three")

	leaves := testutil.CreateAnswer(t, db, q2, q3, "leaves q2")
	leads := testutil.CreateAnswer(t, db, q1, q2, "leads to q2")
	testutil.CreateAnswer(t, db, q1, q3, "avoids q2")

	ids, err := repo.IDsByQuestionIDs(context.Background(), nil, []uuid.UUID{q2.ID})
	if err != nil {
		t.Fatalf("ids by question ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 edges touching q2, got %d", len(ids))
	}
	found := map[uuid.UUID]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[leaves.ID] || !found[leads.ID] {
		t.Fatalf("expected both inbound and outbound edges, got %v", ids)
	}
}

func TestAnswerRepo_IDsByQuestionIDs_EmptyInput(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAnswerRepo(db, testutil.NewLogger(t))

	ids, err := repo.IDsByQuestionIDs(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("empty input: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}

func TestAnswerRepo_DeleteByQuestionIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAnswerRepo(db, testutil.NewLogger(t))
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "Basics")
	q1 := testutil.CreateQuestion(t, db, dialog, "one")
	q2 := testutil.CreateQuestion(t, db, dialog, "two")
	q3 := testutil.CreateQuestion(t, db, dialog, "three")
	testutil.CreateAnswer(t, db, q1, q2, "gone")
	testutil.CreateAnswer(t, db, q2, q3, "gone too")
	survivor := testutil.CreateAnswer(t, db, q3, q3, "stays")

	if err := repo.DeleteByQuestionIDs(context.Background(), nil, []uuid.UUID{q1.ID, q2.ID}); err != nil {
		t.Fatalf("delete by question ids: %v", err)
	}

	var left []types.Answer
	if err := db.Find(&left).Error; err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(left) != 1 || left[0].ID != survivor.ID {
		t.Fatalf("expected only the q3 self loop to survive, got %d rows", len(left))
	}
}
