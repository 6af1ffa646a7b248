package progress

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type UserDialogQuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UserDialogQuestion) (*types.UserDialogQuestion, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserDialogQuestion, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.UserDialogQuestion, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error
	DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userDialogQuestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserDialogQuestionRepo(db *gorm.DB, baseLog *logger.Logger) UserDialogQuestionRepo {
	return &userDialogQuestionRepo{db: db, log: baseLog.With("repo", "UserDialogQuestionRepo")}
}

func (ur *userDialogQuestionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserDialogQuestion) (*types.UserDialogQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (ur *userDialogQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserDialogQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var result types.UserDialogQuestion
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userDialogQuestionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.UserDialogQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.UserDialogQuestion
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userDialogQuestionRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.UserDialogQuestion{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (ur *userDialogQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UserDialogQuestion{}).Error
}

func (ur *userDialogQuestionRepo) DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Delete(&types.UserDialogQuestion{}).Error
}

func (ur *userDialogQuestionRepo) DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&types.UserDialogQuestion{}).Error
}

func (ur *userDialogQuestionRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserDialogQuestion{}).Error
}
