package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type DialogCreateInput struct {
	Title       string
	Description string
	Owner       *uuid.UUID
}

type DialogUpdateInput struct {
	Title       *string
	Description *string
	Owner       *uuid.UUID
}

type DialogService interface {
	Create(ctx context.Context, in DialogCreateInput) (*types.Dialog, error)
	Get(ctx context.Context, dialogID uuid.UUID) (*types.Dialog, error)
	List(ctx context.Context) ([]*types.Dialog, error)
	Update(ctx context.Context, dialogID uuid.UUID, in DialogUpdateInput) (*types.Dialog, error)
	Delete(ctx context.Context, dialogID uuid.UUID) error

	deleteCascade(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error
}

type dialogService struct {
	db           *gorm.DB
	log          *logger.Logger
	dialogRepo   dialogrepo.DialogRepo
	voteRepo     dialogrepo.VoteRepo
	questionRepo dialogrepo.QuestionRepo
	answerRepo   dialogrepo.AnswerRepo
	userAnswers  progressrepo.UserAnswerRepo
	cursors      progressrepo.UserDialogQuestionRepo
	userRepo     userrepo.UserRepo
}

func NewDialogService(
	db *gorm.DB,
	log *logger.Logger,
	dialogRepo dialogrepo.DialogRepo,
	voteRepo dialogrepo.VoteRepo,
	questionRepo dialogrepo.QuestionRepo,
	answerRepo dialogrepo.AnswerRepo,
	userAnswers progressrepo.UserAnswerRepo,
	cursors progressrepo.UserDialogQuestionRepo,
	userRepo userrepo.UserRepo,
) DialogService {
	return &dialogService{
		db:           db,
		log:          log.With("service", "DialogService"),
		dialogRepo:   dialogRepo,
		voteRepo:     voteRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userAnswers:  userAnswers,
		cursors:      cursors,
		userRepo:     userRepo,
	}
}

func (ds *dialogService) Create(ctx context.Context, in DialogCreateInput) (*types.Dialog, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		fields["title"] = append(fields["title"], "This field is required.")
	}

	ownerID := rd.UserID
	if in.Owner != nil {
		ownerID = *in.Owner
		if _, err := ds.userRepo.GetByID(ctx, nil, ownerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["owner"] = append(fields["owner"], "Invalid pk - object does not exist.")
			} else {
				return nil, fmt.Errorf("check owner: %w", err)
			}
		}
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	dialog := &types.Dialog{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		OwnerID:     ownerID,
	}
	if _, err := ds.dialogRepo.Create(ctx, nil, dialog); err != nil {
		return nil, fmt.Errorf("create dialog: %w", err)
	}
	return dialog, nil
}

func (ds *dialogService) Get(ctx context.Context, dialogID uuid.UUID) (*types.Dialog, error) {
	dialog, err := ds.dialogRepo.GetByID(ctx, nil, dialogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("dialog not found"))
		}
		return nil, fmt.Errorf("load dialog: %w", err)
	}
	return dialog, nil
}

func (ds *dialogService) List(ctx context.Context) ([]*types.Dialog, error) {
	dialogs, err := ds.dialogRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list dialogs: %w", err)
	}
	return dialogs, nil
}

func (ds *dialogService) Update(ctx context.Context, dialogID uuid.UUID, in DialogUpdateInput) (*types.Dialog, error) {
	if _, err := ds.Get(ctx, dialogID); err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	updates := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			fields["title"] = append(fields["title"], "This field may not be blank.")
		} else {
			updates["title"] = title
		}
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Owner != nil {
		if _, err := ds.userRepo.GetByID(ctx, nil, *in.Owner); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["owner"] = append(fields["owner"], "Invalid pk - object does not exist.")
			} else {
				return nil, fmt.Errorf("check owner: %w", err)
			}
		} else {
			updates["owner_id"] = *in.Owner
		}
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	if err := ds.dialogRepo.Update(ctx, nil, dialogID, updates); err != nil {
		return nil, fmt.Errorf("update dialog: %w", err)
	}
	return ds.Get(ctx, dialogID)
}

func (ds *dialogService) Delete(ctx context.Context, dialogID uuid.UUID) error {
	exists, err := ds.dialogRepo.Exists(ctx, nil, dialogID)
	if err != nil {
		return fmt.Errorf("check dialog: %w", err)
	}
	if !exists {
		return apierr.NotFound(errors.New("dialog not found"))
	}
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ds.deleteCascade(ctx, tx, dialogID)
	})
}

// deleteCascade removes a dialog and its whole subtree, children first:
// cursors, answer history, answers touching the dialog's questions, the
// questions, the votes, and finally the dialog row. The store does not
// declare FK cascade, so the ordering here is what keeps referential
// integrity.
func (ds *dialogService) deleteCascade(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	questionIDs, err := ds.questionRepo.IDsByDialogID(ctx, tx, dialogID)
	if err != nil {
		return fmt.Errorf("collect question ids: %w", err)
	}
	answerIDs, err := ds.answerRepo.IDsByQuestionIDs(ctx, tx, questionIDs)
	if err != nil {
		return fmt.Errorf("collect answer ids: %w", err)
	}

	if err := ds.cursors.DeleteByDialogID(ctx, tx, dialogID); err != nil {
		return fmt.Errorf("delete cursors: %w", err)
	}
	if err := ds.userAnswers.DeleteByAnswerIDs(ctx, tx, answerIDs); err != nil {
		return fmt.Errorf("delete user answers: %w", err)
	}
	if err := ds.answerRepo.DeleteByQuestionIDs(ctx, tx, questionIDs); err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	if err := ds.questionRepo.DeleteByDialogID(ctx, tx, dialogID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if err := ds.voteRepo.DeleteByDialogID(ctx, tx, dialogID); err != nil {
		return fmt.Errorf("delete votes: %w", err)
	}
	if err := ds.dialogRepo.Delete(ctx, tx, dialogID); err != nil {
		return fmt.Errorf("delete dialog: %w", err)
	}
	ds.log.Debug("dialog cascade deleted", "dialog_id", dialogID.String(),
		"questions", len(questionIDs), "answers", len(answerIDs))
	return nil
}
