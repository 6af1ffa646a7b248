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

type AnswerCreateInput struct {
	Question     *uuid.UUID
	Content      string
	NextQuestion *uuid.UUID
	Value        *int
}

type AnswerUpdateInput struct {
	Question     *uuid.UUID
	Content      *string
	NextQuestion *uuid.UUID
	Value        *int
}

// AnswerService manages the edges of the question graph. An answer may point
// back at an earlier question or into another dialog entirely; neither is
// rejected.
type AnswerService interface {
	Create(ctx context.Context, in AnswerCreateInput) (*types.Answer, error)
	Get(ctx context.Context, answerID uuid.UUID) (*types.Answer, error)
	List(ctx context.Context) ([]*types.Answer, error)
	Update(ctx context.Context, answerID uuid.UUID, in AnswerUpdateInput) (*types.Answer, error)
	Delete(ctx context.Context, answerID uuid.UUID) error
}

type answerService struct {
	db           *gorm.DB
	log          *logger.Logger
	answerRepo   dialogrepo.AnswerRepo
	questionRepo dialogrepo.QuestionRepo
	userAnswers  progressrepo.UserAnswerRepo
}

func NewAnswerService(
	db *gorm.DB,
	log *logger.Logger,
	answerRepo dialogrepo.AnswerRepo,
	questionRepo dialogrepo.QuestionRepo,
	userAnswers progressrepo.UserAnswerRepo,
) AnswerService {
	return &answerService{
		db:           db,
		log:          log.With("service", "AnswerService"),
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userAnswers:  userAnswers,
	}
}

func (as *answerService) checkQuestion(ctx context.Context, fields map[string][]string, field string, id *uuid.UUID) error {
	if id == nil {
		fields[field] = append(fields[field], "This field is required.")
		return nil
	}
	exists, err := as.questionRepo.Exists(ctx, nil, *id)
	if err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if !exists {
		fields[field] = append(fields[field], "Invalid pk - object does not exist.")
	}
	return nil
}

func (as *answerService) Create(ctx context.Context, in AnswerCreateInput) (*types.Answer, error) {
	fields := map[string][]string{}
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		fields["content"] = append(fields["content"], "This field is required.")
	}
	if err := as.checkQuestion(ctx, fields, "question", in.Question); err != nil {
		return nil, err
	}
	if err := as.checkQuestion(ctx, fields, "next_question", in.NextQuestion); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	value := 0
	if in.Value != nil {
		value = *in.Value
	}
	answer := &types.Answer{
		ID:             uuid.New(),
		QuestionID:     *in.Question,
		Content:        in.Content,
		NextQuestionID: *in.NextQuestion,
		Value:          value,
	}
	if _, err := as.answerRepo.Create(ctx, nil, answer); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

func (as *answerService) Get(ctx context.Context, answerID uuid.UUID) (*types.Answer, error) {
	answer, err := as.answerRepo.GetByID(ctx, nil, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(errors.New("answer not found"))
		}
		return nil, fmt.Errorf("load answer: %w", err)
	}
	return answer, nil
}

func (as *answerService) List(ctx context.Context) ([]*types.Answer, error) {
	answers, err := as.answerRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

func (as *answerService) Update(ctx context.Context, answerID uuid.UUID, in AnswerUpdateInput) (*types.Answer, error) {
	if _, err := as.Get(ctx, answerID); err != nil {
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
	if in.Question != nil {
		if err := as.checkQuestion(ctx, fields, "question", in.Question); err != nil {
			return nil, err
		}
		updates["question_id"] = *in.Question
	}
	if in.NextQuestion != nil {
		if err := as.checkQuestion(ctx, fields, "next_question", in.NextQuestion); err != nil {
			return nil, err
		}
		updates["next_question_id"] = *in.NextQuestion
	}
	if in.Value != nil {
		updates["value"] = *in.Value
	}
	if len(fields) > 0 {
		return nil, apierr.Validation(fields)
	}

	if err := as.answerRepo.Update(ctx, nil, answerID, updates); err != nil {
		return nil, fmt.Errorf("update answer: %w", err)
	}
	return as.Get(ctx, answerID)
}

func (as *answerService) Delete(ctx context.Context, answerID uuid.UUID) error {
	exists, err := as.answerRepo.Exists(ctx, nil, answerID)
	if err != nil {
		return fmt.Errorf("check answer: %w", err)
	}
	if !exists {
		return apierr.NotFound(errors.New("answer not found"))
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userAnswers.DeleteByAnswerIDs(ctx, tx, []uuid.UUID{answerID}); err != nil {
			return fmt.Errorf("delete user answers: %w", err)
		}
		if err := as.answerRepo.Delete(ctx, tx, answerID); err != nil {
			return fmt.Errorf("delete answer: %w", err)
		}
		return nil
	})
}
