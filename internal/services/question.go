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
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type QuestionCreateInput struct {
	Dialog  *uuid.UUID
	Content string
	Initial *bool
}

type QuestionUpdateInput struct {
	Dialog  *uuid.UUID
	Content *string
	Initial *bool
}

type QuestionService interface {
	Create(ctx context.Context, in QuestionCreateInput) (*types.Question, error)
	Get(ctx context.Context, questionID uuid.UUID) (*types.Question, error)
	List(ctx context.Context) ([]*types.Question, error)
	Update(ctx context.Context, questionID uuid.UUID, in QuestionUpdateInput) (*types.Question, error)
	Delete(ctx context.Context, questionID uuid.UUID) error
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo dialogrepo.QuestionRepo
	answerRepo   dialogrepo.AnswerRepo
	dialogRepo   dialogrepo.DialogRepo
	userAnswers  progressrepo.UserAnswerRepo
	cursors      progressrepo.UserDialogQuestionRepo
}

func NewQuestionService(
	db *gorm.DB,
	log *logger.Logger,
	questionRepo dialogrepo.QuestionRepo,
	answerRepo dialogrepo.AnswerRepo,
	dialogRepo dialogrepo.DialogRepo,
	userAnswers progressrepo.UserAnswerRepo,
	cursors progressrepo.UserDialogQuestionRepo,
) QuestionService {
	return &questionService{
		db:           db,
		log:          log.With("service", "QuestionService"),
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		dialogRepo:   dialogRepo,
		userAnswers:  userAnswers,
		cursors:      cursors,
	}
}

func (qs *questionService) Create(ctx context.Context, in QuestionCreateInput) (*types.Question, error) {
	fields := map[string][]string{}
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		fields["content"] = append(fields["content"], "This field is required.")
	}
	if in.Dialog == nil {
		fields["dialog"] = append(fields["dialog"], "This field is required.")
	} else {
		exists, err := qs.dialogRepo.Exists(ctx, nil, *in.Dialog)
		if err != nil {
			return nil, fmt.Errorf("check dialog: %w", err)
		}
		if !exists {
			fields["dialog"] = append(fields["dialog"], "Invalid pk - object does not exist.")
		}
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	initial := true
	if in.Initial != nil {
		initial = *in.Initial
	}
	question := &types.Question{
		ID:       uuid.New(),
		DialogID: *in.Dialog,
		Content:  in.Content,
		Initial:  initial,
	}
	if _, err := qs.questionRepo.Create(ctx, nil, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

func (qs *questionService) Get(ctx context.Context, questionID uuid.UUID) (*types.Question, error) {
	question, err := qs.questionRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("question not found"))
		}
		return nil, fmt.Errorf("load question: %w", err)
	}
	return question, nil
}

func (qs *questionService) List(ctx context.Context) ([]*types.Question, error) {
	questions, err := qs.questionRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (qs *questionService) Update(ctx context.Context, questionID uuid.UUID, in QuestionUpdateInput) (*types.Question, error) {
	if _, err := qs.Get(ctx, questionID); err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	updates := map[string]any{}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			fields["content"] = append(fields["content"], "This field may not be blank.")
		} else {
			updates["content"] = content
		}
	}
	if in.Dialog != nil {
		exists, err := qs.dialogRepo.Exists(ctx, nil, *in.Dialog)
		if err != nil {
			return nil, fmt.Errorf("check dialog: %w", err)
		}
		if !exists {
			fields["dialog"] = append(fields["dialog"], "Invalid pk - object does not exist.")
		} else {
			updates["dialog_id"] = *in.Dialog
		}
	}
	if in.Initial != nil {
		updates["initial"] = *in.Initial
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	if err := qs.questionRepo.Update(ctx, nil, questionID, updates); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	return qs.Get(ctx, questionID)
}

// Delete removes the question and, children first, every answer that either
// leaves it or leads to it, the answer history rows for those answers, and
// any traversal cursor parked on it.
func (qs *questionService) Delete(ctx context.Context, questionID uuid.UUID) error {
	exists, err := qs.questionRepo.Exists(ctx, nil, questionID)
	if err != nil {
		return fmt.Errorf("check question: %w", err)
	}
	if !exists {
		return apierr.NotFound(errors.New("question not found"))
	}
	return qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{questionID}
		answerIDs, err := qs.answerRepo.IDsByQuestionIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("collect answer ids: %w", err)
		}
		if err := qs.userAnswers.DeleteByAnswerIDs(ctx, tx, answerIDs); err != nil {
			return fmt.Errorf("delete user answers: %w", err)
		}
		if err := qs.answerRepo.DeleteByQuestionIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}
		if err := qs.cursors.DeleteByQuestionID(ctx, tx, questionID); err != nil {
			return fmt.Errorf("delete cursors: %w", err)
		}
		if err := qs.questionRepo.Delete(ctx, tx, questionID); err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		return nil
	})
}
