package dialog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)
	IDsByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, fields map[string]any) error
	Exists(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
	DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (qr *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (qr *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.Question
	if err := transaction.WithContext(ctx).
		Where("id = ?", questionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *questionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.Question
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (qr *questionRepo) IDsByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("dialog_id = ?", dialogID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (qr *questionRepo) Update(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Updates(fields).Error
}

func (qr *questionRepo) Exists(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (qr *questionRepo) Delete(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&types.Question{}).Error
}

func (qr *questionRepo) DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Delete(&types.Question{}).Error
}
