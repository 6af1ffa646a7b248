package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authrepo "github.com/tatarby/backend/internal/data/repos/auth"
	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
	"github.com/tatarby/backend/internal/requestdata"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	TouchActivity(ctx context.Context) (*types.User, error)
	// DeleteUser removes the user and everything hanging off them: tokens,
	// votes, answer history, cursors and every owned dialog with its own
	// subtree. There is no HTTP endpoint for this; it exists for
	// administrative use.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	userTokenRepo authrepo.UserTokenRepo
	voteRepo      dialogrepo.VoteRepo
	userAnswers   progressrepo.UserAnswerRepo
	cursors       progressrepo.UserDialogQuestionRepo
	dialogRepo    dialogrepo.DialogRepo
	dialogService DialogService
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	userTokenRepo authrepo.UserTokenRepo,
	voteRepo dialogrepo.VoteRepo,
	userAnswers progressrepo.UserAnswerRepo,
	cursors progressrepo.UserDialogQuestionRepo,
	dialogRepo dialogrepo.DialogRepo,
	dialogService DialogService,
) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		voteRepo:      voteRepo,
		userAnswers:   userAnswers,
		cursors:       cursors,
		dialogRepo:    dialogRepo,
		dialogService: dialogService,
	}
}

func principal(ctx context.Context) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized(errors.New("no authenticated user"))
	}
	return rd, nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if rd.User != nil {
		return rd.User, nil
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (us *userService) TouchActivity(ctx context.Context) (*types.User, error) {
	rd, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := us.userRepo.UpdateLastAction(ctx, nil, rd.UserID, now); err != nil {
		return nil, fmt.Errorf("update last action: %w", err)
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return user, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.userRepo.GetByID(ctx, tx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(errors.New("user not found"))
			}
			return fmt.Errorf("load user: %w", err)
		}

		if err := us.userTokenRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete tokens: %w", err)
		}
		if err := us.voteRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if err := us.userAnswers.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete user answers: %w", err)
		}
		if err := us.cursors.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete cursors: %w", err)
		}

		owned, err := us.dialogRepo.ListByOwnerID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("list owned dialogs: %w", err)
		}
		for _, d := range owned {
			if err := us.dialogService.deleteCascade(ctx, tx, d.ID); err != nil {
				return fmt.Errorf("cascade dialog %s: %w", d.ID, err)
			}
		}

		if err := us.userRepo.Delete(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		us.log.Info("user deleted", "user_id", userID.String())
		return nil
	})
}
