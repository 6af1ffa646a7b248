package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
)

// VoteService keeps two invariants: at most one vote row per (user, dialog),
// and dialog.vote_score equals the full recount of that dialog's votes after
// every mutation. Each mutation runs the lookup-write-recount sequence inside
// one transaction so concurrent votes on the same dialog cannot commit a
// stale score.
type VoteService interface {
	Cast(ctx context.Context, dialogID uuid.UUID, voteType int) (*types.Vote, error)
	Retract(ctx context.Context, voteID uuid.UUID) error
	Update(ctx context.Context, voteID uuid.UUID, voteType int) (*types.Vote, error)
	Get(ctx context.Context, voteID uuid.UUID) (*types.Vote, error)
	List(ctx context.Context) ([]*types.Vote, error)
}

type voteService struct {
	db         *gorm.DB
	log        *logger.Logger
	voteRepo   dialogrepo.VoteRepo
	dialogRepo dialogrepo.DialogRepo
}

func NewVoteService(
	db *gorm.DB,
	log *logger.Logger,
	voteRepo dialogrepo.VoteRepo,
	dialogRepo dialogrepo.DialogRepo,
) VoteService {
	return &voteService{
		db:         db,
		log:        log.With("service", "VoteService"),
		voteRepo:   voteRepo,
		dialogRepo: dialogRepo,
	}
}

func validVoteType(voteType int) bool {
	return voteType == types.VoteUp || voteType == types.VoteDown
}

func (vs *voteService) Cast(ctx context.Context, dialogID uuid.UUID, voteType int) (*types.Vote, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if !validVoteType(voteType) {
		return nil, apierr.FieldError("vote_type", fmt.Sprintf("\"%d\" is not a valid choice.", voteType))
	}

	var vote *types.Vote
	err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := vs.dialogRepo.Exists(ctx, tx, dialogID)
		if err != nil {
			return fmt.Errorf("check dialog: %w", err)
		}
		if !exists {
			return apierr.NotFound(errors.New("dialog not found"))
		}

		existing, err := vs.voteRepo.GetByUserAndDialog(ctx, tx, rd.UserID, dialogID)
		switch {
		case err == nil:
			// The user already voted on this dialog: overwrite in place so
			// the pair never holds two rows.
			if err := vs.voteRepo.UpdateVoteType(ctx, tx, existing.ID, voteType); err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
			existing.VoteType = voteType
			vote = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = &types.Vote{
				ID:       uuid.New(),
				UserID:   rd.UserID,
				DialogID: dialogID,
				VoteType: voteType,
			}
			if _, err := vs.voteRepo.Create(ctx, tx, vote); err != nil {
				return fmt.Errorf("create vote: %w", err)
			}
		default:
			return fmt.Errorf("look up vote: %w", err)
		}

		return vs.recomputeScore(ctx, tx, dialogID)
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func (vs *voteService) Retract(ctx context.Context, voteID uuid.UUID) error {
	rd, err := principal(ctx)
	if err != nil {
		return err
	}
	return vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vote, err := vs.voteRepo.GetByID(ctx, tx, voteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(errors.New("vote not found"))
			}
			return fmt.Errorf("load vote: %w", err)
		}
		// Foreign votes are invisible to the caller.
		if vote.UserID != rd.UserID {
			return apierr.NotFound(errors.New("vote not found"))
		}
		if err := vs.voteRepo.Delete(ctx, tx, voteID); err != nil {
			return fmt.Errorf("delete vote: %w", err)
		}
		return vs.recomputeScore(ctx, tx, vote.DialogID)
	})
}

func (vs *voteService) Update(ctx context.Context, voteID uuid.UUID, voteType int) (*types.Vote, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if !validVoteType(voteType) {
		return nil, apierr.FieldError("vote_type", fmt.Sprintf("\"%d\" is not a valid choice.", voteType))
	}

	var vote *types.Vote
	err = vs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := vs.voteRepo.GetByID(ctx, tx, voteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(errors.New("vote not found"))
			}
			return fmt.Errorf("load vote: %w", err)
		}
		if existing.UserID != rd.UserID {
			return apierr.NotFound(errors.New("vote not found"))
		}
		if err := vs.voteRepo.UpdateVoteType(ctx, tx, voteID, voteType); err != nil {
			return fmt.Errorf("update vote: %w", err)
		}
		existing.VoteType = voteType
		vote = existing
		return vs.recomputeScore(ctx, tx, existing.DialogID)
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

func (vs *voteService) Get(ctx context.Context, voteID uuid.UUID) (*types.Vote, error) {
	vote, err := vs.voteRepo.GetByID(ctx, nil, voteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("vote not found"))
		}
		return nil, fmt.Errorf("load vote: %w", err)
	}
	return vote, nil
}

func (vs *voteService) List(ctx context.Context) ([]*types.Vote, error) {
	votes, err := vs.voteRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return votes, nil
}

// recomputeScore recounts the dialog's votes from scratch and persists the
// result. Recounting instead of nudging the cached value by +-1 keeps the
// score immune to drift.
func (vs *voteService) recomputeScore(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	upvotes, err := vs.voteRepo.CountByType(ctx, tx, dialogID, types.VoteUp)
	if err != nil {
		return fmt.Errorf("count upvotes: %w", err)
	}
	downvotes, err := vs.voteRepo.CountByType(ctx, tx, dialogID, types.VoteDown)
	if err != nil {
		return fmt.Errorf("count downvotes: %w", err)
	}
	score := int(upvotes - downvotes)
	if err := vs.dialogRepo.UpdateVoteScore(ctx, tx, dialogID, score); err != nil {
		return fmt.Errorf("persist vote score: %w", err)
	}
	vs.log.Debug("vote score recomputed", "dialog_id", dialogID.String(), "score", score)
	return nil
}
