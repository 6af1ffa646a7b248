package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	"github.com/tatarby/backend/internal/data/repos/testutil"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
)

func newVoteService(t *testing.T, db *gorm.DB) VoteService {
	t.Helper()
	log := testutil.NewLogger(t)
	return NewVoteService(db, log, dialogrepo.NewVoteRepo(db, log), dialogrepo.NewDialogRepo(db, log))
}

func dialogScore(t *testing.T, db *gorm.DB, dialogID uuid.UUID) int {
	t.Helper()
	var dialog types.Dialog
	if err := db.First(&dialog, "id = ?", dialogID).Error; err != nil {
		t.Fatalf("reload dialog: %v", err)
	}
	return dialog.VoteScore
}

func voteCount(t *testing.T, db *gorm.DB, userID, dialogID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&types.Vote{}).Where("user_id = ? AND dialog_id = ?", userID, dialogID).Count(&n).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	return n
}

func TestCast_CreatesVoteAndScore(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	vote, err := svc.Cast(testutil.PrincipalContext(alice), dialog.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if vote.VoteType != types.VoteUp {
		t.Fatalf("unexpected vote type %d", vote.VoteType)
	}
	if got := dialogScore(t, db, dialog.ID); got != 1 {
		t.Fatalf("expected score 1, got %d", got)
	}
}

func TestCast_RepeatVoteOverwritesInPlace(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	aliceCtx := testutil.PrincipalContext(alice)
	if _, err := svc.Cast(aliceCtx, dialog.ID, types.VoteUp); err != nil {
		t.Fatalf("cast up: %v", err)
	}
	if got := dialogScore(t, db, dialog.ID); got != 1 {
		t.Fatalf("after alice +1: expected score 1, got %d", got)
	}

	// Voting again flips the existing row rather than adding a second one.
	if _, err := svc.Cast(aliceCtx, dialog.ID, types.VoteDown); err != nil {
		t.Fatalf("cast down: %v", err)
	}
	if got := voteCount(t, db, alice.ID, dialog.ID); got != 1 {
		t.Fatalf("expected one vote row for alice, got %d", got)
	}
	if got := dialogScore(t, db, dialog.ID); got != -1 {
		t.Fatalf("after alice flip: expected score -1, got %d", got)
	}

	if _, err := svc.Cast(testutil.PrincipalContext(bob), dialog.ID, types.VoteUp); err != nil {
		t.Fatalf("bob cast: %v", err)
	}
	if got := dialogScore(t, db, dialog.ID); got != 0 {
		t.Fatalf("after bob +1: expected score 0, got %d", got)
	}
}

func TestCast_RejectsInvalidVoteType(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	_, err := svc.Cast(testutil.PrincipalContext(alice), dialog.ID, 2)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if len(apiErr.Fields["vote_type"]) == 0 {
		t.Fatalf("expected vote_type field error")
	}
}

func TestCast_UnknownDialogNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")

	_, err := svc.Cast(testutil.PrincipalContext(alice), uuid.New(), types.VoteUp)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestRetract_DeletesVoteAndRecounts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	aliceVote, err := svc.Cast(testutil.PrincipalContext(alice), dialog.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("alice cast: %v", err)
	}
	if _, err := svc.Cast(testutil.PrincipalContext(bob), dialog.ID, types.VoteUp); err != nil {
		t.Fatalf("bob cast: %v", err)
	}
	if got := dialogScore(t, db, dialog.ID); got != 2 {
		t.Fatalf("expected score 2, got %d", got)
	}

	if err := svc.Retract(testutil.PrincipalContext(alice), aliceVote.ID); err != nil {
		t.Fatalf("retract: %v", err)
	}
	if got := dialogScore(t, db, dialog.ID); got != 1 {
		t.Fatalf("after retract: expected score 1, got %d", got)
	}
}

func TestRetract_ForeignVoteInvisible(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	bob := testutil.CreateUser(t, db, "bob@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	aliceVote, err := svc.Cast(testutil.PrincipalContext(alice), dialog.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}

	err = svc.Retract(testutil.PrincipalContext(bob), aliceVote.ID)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign vote, got %v", err)
	}
	if got := voteCount(t, db, alice.ID, dialog.ID); got != 1 {
		t.Fatalf("alice's vote should survive, found %d rows", got)
	}
}

func TestUpdate_FlipsDirectionAndRecounts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	ctx := testutil.PrincipalContext(alice)
	vote, err := svc.Cast(ctx, dialog.ID, types.VoteUp)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}

	updated, err := svc.Update(ctx, vote.ID, types.VoteDown)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.VoteType != types.VoteDown {
		t.Fatalf("unexpected vote type %d", updated.VoteType)
	}
	if got := dialogScore(t, db, dialog.ID); got != -1 {
		t.Fatalf("expected score -1, got %d", got)
	}
}

func TestVote_RequiresPrincipal(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVoteService(t, db)
	alice := testutil.CreateUser(t, db, "alice@example.com")
	dialog := testutil.CreateDialog(t, db, alice, "greetings")

	_, err := svc.Cast(context.Background(), dialog.ID, types.VoteUp)
	apiErr := apierr.From(err)
	if apiErr == nil || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %v", err)
	}
}
