package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type UserAnswerCreateInput struct {
	User   *uuid.UUID
	Answer *uuid.UUID
}

// UserAnswerService records which answers users picked. The history is
// append-only; there is no update operation.
type UserAnswerService interface {
	Create(ctx context.Context, in UserAnswerCreateInput) (*types.UserAnswer, error)
	Get(ctx context.Context, id uuid.UUID) (*types.UserAnswer, error)
	List(ctx context.Context) ([]*types.UserAnswer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userAnswerService struct {
	db          *gorm.DB
	log         *logger.Logger
	userAnswers progressrepo.UserAnswerRepo
	answerRepo  dialogrepo.AnswerRepo
	userRepo    userrepo.UserRepo
}

func NewUserAnswerService(
	db *gorm.DB,
	log *logger.Logger,
	userAnswers progressrepo.UserAnswerRepo,
	answerRepo dialogrepo.AnswerRepo,
	userRepo userrepo.UserRepo,
) UserAnswerService {
	return &userAnswerService{
		db:          db,
		log:         log.With("service", "UserAnswerService"),
		userAnswers: userAnswers,
		answerRepo:  answerRepo,
		userRepo:    userRepo,
	}
}

func (uas *userAnswerService) Create(ctx context.Context, in UserAnswerCreateInput) (*types.UserAnswer, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	userID := rd.UserID
	if in.User != nil {
		userID = *in.User
		if _, err := uas.userRepo.GetByID(ctx, nil, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["user"] = append(fields["user"], "Invalid pk - object does not exist.")
			} else {
				return nil, fmt.Errorf("check user: %w", err)
			}
		}
	}
	if in.Answer == nil {
		fields["answer"] = append(fields["answer"], "This field is required.")
	} else {
		exists, err := uas.answerRepo.Exists(ctx, nil, *in.Answer)
		if err != nil {
			return nil, fmt.Errorf("check answer: %w", err)
		}
		if !exists {
			fields["answer"] = append(fields["answer"], "Invalid pk - object does not exist.")
		}
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	row := &types.UserAnswer{
		ID:       uuid.New(),
		UserID:   userID,
		AnswerID: *in.Answer,
	}
	if _, err := uas.userAnswers.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create user answer: %w", err)
	}
	return row, nil
}

func (uas *userAnswerService) Get(ctx context.Context, id uuid.UUID) (*types.UserAnswer, error) {
	row, err := uas.userAnswers.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("user answer not found"))
		}
		return nil, fmt.Errorf("load user answer: %w", err)
	}
	return row, nil
}

func (uas *userAnswerService) List(ctx context.Context) ([]*types.UserAnswer, error) {
	rows, err := uas.userAnswers.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list user answers: %w", err)
	}
	return rows, nil
}

func (uas *userAnswerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := uas.Get(ctx, id); err != nil {
		return err
	}
	if err := uas.userAnswers.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete user answer: %w", err)
	}
	return nil
}

type CursorCreateInput struct {
	User     *uuid.UUID
	Dialog   *uuid.UUID
	Question *uuid.UUID
}

type CursorUpdateInput struct {
	User     *uuid.UUID
	Dialog   *uuid.UUID
	Question *uuid.UUID
}

// CursorService tracks each user's current question within a dialog
// (the user_dialog_question rows).
type CursorService interface {
	Create(ctx context.Context, in CursorCreateInput) (*types.UserDialogQuestion, error)
	Get(ctx context.Context, id uuid.UUID) (*types.UserDialogQuestion, error)
	List(ctx context.Context) ([]*types.UserDialogQuestion, error)
	Update(ctx context.Context, id uuid.UUID, in CursorUpdateInput) (*types.UserDialogQuestion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cursorService struct {
	db           *gorm.DB
	log          *logger.Logger
	cursors      progressrepo.UserDialogQuestionRepo
	dialogRepo   dialogrepo.DialogRepo
	questionRepo dialogrepo.QuestionRepo
	userRepo     userrepo.UserRepo
}

func NewCursorService(
	db *gorm.DB,
	log *logger.Logger,
	cursors progressrepo.UserDialogQuestionRepo,
	dialogRepo dialogrepo.DialogRepo,
	questionRepo dialogrepo.QuestionRepo,
	userRepo userrepo.UserRepo,
) CursorService {
	return &cursorService{
		db:           db,
		log:          log.With("service", "CursorService"),
		cursors:      cursors,
		dialogRepo:   dialogRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

func (cs *cursorService) validateRefs(ctx context.Context, fields map[string][]string, dialogID, questionID *uuid.UUID) error {
	if dialogID != nil {
		exists, err := cs.dialogRepo.Exists(ctx, nil, *dialogID)
		if err != nil {
			return fmt.Errorf("check dialog: %w", err)
		}
		if !exists {
			fields["dialog"] = append(fields["dialog"], "Invalid pk - object does not exist.")
		}
	}
	if questionID != nil {
		exists, err := cs.questionRepo.Exists(ctx, nil, *questionID)
		if err != nil {
			return fmt.Errorf("check question: %w", err)
		}
		if !exists {
			fields["question"] = append(fields["question"], "Invalid pk - object does not exist.")
		}
	}
	return nil
}

func (cs *cursorService) Create(ctx context.Context, in CursorCreateInput) (*types.UserDialogQuestion, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	userID := rd.UserID
	if in.User != nil {
		userID = *in.User
		if _, err := cs.userRepo.GetByID(ctx, nil, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["user"] = append(fields["user"], "Invalid pk - object does not exist.")
			} else {
				return nil, fmt.Errorf("check user: %w", err)
			}
		}
	}
	if in.Dialog == nil {
		fields["dialog"] = append(fields["dialog"], "This field is required.")
	}
	if in.Question == nil {
		fields["question"] = append(fields["question"], "This field is required.")
	}
	if err := cs.validateRefs(ctx, fields, in.Dialog, in.Question); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	row := &types.UserDialogQuestion{
		ID:         uuid.New(),
		UserID:     userID,
		DialogID:   *in.Dialog,
		QuestionID: *in.Question,
	}
	if _, err := cs.cursors.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create cursor: %w", err)
	}
	return row, nil
}

func (cs *cursorService) Get(ctx context.Context, id uuid.UUID) (*types.UserDialogQuestion, error) {
	row, err := cs.cursors.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("user dialog question not found"))
		}
		return nil, fmt.Errorf("load cursor: %w", err)
	}
	return row, nil
}

func (cs *cursorService) List(ctx context.Context) ([]*types.UserDialogQuestion, error) {
	rows, err := cs.cursors.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list cursors: %w", err)
	}
	return rows, nil
}

func (cs *cursorService) Update(ctx context.Context, id uuid.UUID, in CursorUpdateInput) (*types.UserDialogQuestion, error) {
	if _, err := cs.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	updates := map[string]any{}
	if in.User != nil {
		if _, err := cs.userRepo.GetByID(ctx, nil, *in.User); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fields["user"] = append(fields["user"], "Invalid pk - object does not exist.")
			} else {
				return nil, fmt.Errorf("check user: %w", err)
			}
		} else {
			updates["user_id"] = *in.User
		}
	}
	if err := cs.validateRefs(ctx, fields, in.Dialog, in.Question); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}
	if in.Dialog != nil {
		updates["dialog_id"] = *in.Dialog
	}
	if in.Question != nil {
		updates["question_id"] = *in.Question
	}

	if err := cs.cursors.Update(ctx, nil, id, updates); err != nil {
		return nil, fmt.Errorf("update cursor: %w", err)
	}
	return cs.Get(ctx, id)
}

func (cs *cursorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := cs.Get(ctx, id); err != nil {
		return err
	}
	if err := cs.cursors.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete cursor: %w", err)
	}
	return nil
}
