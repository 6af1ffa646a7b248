package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

// UserAnswerRepo has no update method: the answer history is append-only.
type UserAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UserAnswer) (*types.UserAnswer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserAnswer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.UserAnswer, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByAnswerIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAnswerRepo(db *gorm.DB, baseLog *logger.Logger) UserAnswerRepo {
	return &userAnswerRepo{db: db, log: baseLog.With("repo", "UserAnswerRepo")}
}

func (uar *userAnswerRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserAnswer) (*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (uar *userAnswerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	var result types.UserAnswer
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (uar *userAnswerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	var results []*types.UserAnswer
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uar *userAnswerRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UserAnswer{}).Error
}

func (uar *userAnswerRepo) DeleteByAnswerIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	if len(answerIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("answer_id IN ?", answerIDs).
		Delete(&types.UserAnswer{}).Error
}

func (uar *userAnswerRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserAnswer{}).Error
}
