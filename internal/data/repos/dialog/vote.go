package dialog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/logger"
)

type VoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error)
	GetByID(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) (*types.Vote, error)
	GetByUserAndDialog(ctx context.Context, tx *gorm.DB, userID, dialogID uuid.UUID) (*types.Vote, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Vote, error)
	CountByType(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, voteType int) (int64, error)
	UpdateVoteType(ctx context.Context, tx *gorm.DB, voteID uuid.UUID, voteType int) error
	Delete(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) error
	DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	return &voteRepo{db: db, log: baseLog.With("repo", "VoteRepo")}
}

func (vr *voteRepo) Create(ctx context.Context, tx *gorm.DB, vote *types.Vote) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if err := transaction.WithContext(ctx).Create(vote).Error; err != nil {
		return nil, err
	}
	return vote, nil
}

func (vr *voteRepo) GetByID(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.Vote
	if err := transaction.WithContext(ctx).
		Where("id = ?", voteID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *voteRepo) GetByUserAndDialog(ctx context.Context, tx *gorm.DB, userID, dialogID uuid.UUID) (*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.Vote
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND dialog_id = ?", userID, dialogID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *voteRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Vote, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.Vote
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *voteRepo) CountByType(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID, voteType int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Where("dialog_id = ? AND vote_type = ?", dialogID, voteType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (vr *voteRepo) UpdateVoteType(ctx context.Context, tx *gorm.DB, voteID uuid.UUID, voteType int) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Vote{}).
		Where("id = ?", voteID).
		Update("vote_type", voteType).Error
}

func (vr *voteRepo) Delete(ctx context.Context, tx *gorm.DB, voteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", voteID).
		Delete(&types.Vote{}).Error
}

func (vr *voteRepo) DeleteByDialogID(ctx context.Context, tx *gorm.DB, dialogID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Where("dialog_id = ?", dialogID).
		Delete(&types.Vote{}).Error
}

func (vr *voteRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Vote{}).Error
}
