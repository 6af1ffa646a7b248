package dialog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answer *types.Answer) (*types.Answer, error)
	GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.Answer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Answer, error)
	IDsByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, tx *gorm.DB, answerID uuid.UUID, fields map[string]any) error
	Exists(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) error
	DeleteByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	return &answerRepo{db: db, log: baseLog.With("repo", "AnswerRepo")}
}

func (ar *answerRepo) Create(ctx context.Context, tx *gorm.DB, answer *types.Answer) (*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (ar *answerRepo) GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var result types.Answer
	if err := transaction.WithContext(ctx).
		Where("id = ?", answerID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *answerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Answer
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *answerRepo) IDsByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var ids []uuid.UUID
	if len(questionIDs) == 0 {
		return ids, nil
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Answer{}).
		Where("question_id IN ? OR next_question_id IN ?", questionIDs, questionIDs).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ar *answerRepo) Update(ctx context.Context, tx *gorm.DB, answerID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Answer{}).
		Where("id = ?", answerID).
		Updates(fields).Error
}

func (ar *answerRepo) Exists(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Answer{}).
		Where("id = ?", answerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *answerRepo) Delete(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", answerID).
		Delete(&types.Answer{}).Error
}

func (ar *answerRepo) DeleteByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(questionIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("question_id IN ? OR next_question_id IN ?", questionIDs, questionIDs).
		Delete(&types.Answer{}).Error
}
