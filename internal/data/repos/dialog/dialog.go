package dialog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type DialogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, dialog *types.Dialog) (*types.Dialog, error)
	GetByID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) (*types.Dialog, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Dialog, error)
	Update(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, fields map[string]any) error
	UpdateVoteScore(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, score int) error
	Exists(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error
	DeleteByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) error
	ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Dialog, error)
}

type dialogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDialogRepo(db *gorm.DB, baseLog *logger.Logger) DialogRepo {
	return &dialogRepo{db: db, log: baseLog.With("repo", "DialogRepo")}
}

func (dr *dialogRepo) Create(ctx context.Context, tx *gorm.DB, dialog *types.Dialog) (*types.Dialog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(dialog).Error; err != nil {
		return nil, err
	}
	return dialog, nil
}

func (dr *dialogRepo) GetByID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) (*types.Dialog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.Dialog
	if err := transaction.WithContext(ctx).
		Where("id = ?", dialogID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *dialogRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Dialog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Dialog
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *dialogRepo) Update(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Dialog{}).
		Where("id = ?", dialogID).
		Updates(fields).Error
}

func (dr *dialogRepo) UpdateVoteScore(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, score int) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Dialog{}).
		Where("id = ?", dialogID).
		Update("vote_score", score).Error
}

func (dr *dialogRepo) Exists(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Dialog{}).
		Where("id = ?", dialogID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *dialogRepo) Delete(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", dialogID).
		Delete(&types.Dialog{}).Error
}

func (dr *dialogRepo) DeleteByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&types.Dialog{}).Error
}

func (dr *dialogRepo) ListByOwnerID(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Dialog, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.Dialog
	if err := transaction.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
