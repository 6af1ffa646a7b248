package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authrepo "github.com/tatarby/backend/internal/data/repos/auth"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	types "github.com/tatarby/backend/internal/domain"
	"github.com/tatarby/backend/internal/pkg/apierr"
	"github.com/tatarby/backend/internal/pkg/logger"
	"github.com/tatarby/backend/internal/requestdata"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService owns the account and bearer-token lifecycle. A user holds at
// most one token row; it is created lazily on first login or registration,
// handed back unchanged on repeated logins, and deleted on logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	ResolvePrincipal(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	userTokenRepo authrepo.UserTokenRepo
	jwtSecretKey  string
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	userTokenRepo authrepo.UserTokenRepo,
	jwtSecretKey string,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	fields := map[string][]string{}
	if in.Email == "" {
		fields["email"] = append(fields["email"], "This field is required.")
	} else if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = append(fields["email"], "Enter a valid email address.")
	}
	if in.Password == "" {
		fields["password"] = append(fields["password"], "This field is required.")
	}
	if in.FirstName == "" {
		fields["first_name"] = append(fields["first_name"], "This field is required.")
	}
	if in.LastName == "" {
		fields["last_name"] = append(fields["last_name"], "This field is required.")
	}
	if len(fields) == 0 {
		exists, err := as.userRepo.EmailExists(ctx, nil, in.Email)
		if err != nil {
			return nil, "", fmt.Errorf("check email uniqueness: %w", err)
		}
		if exists {
			fields["email"] = append(fields["email"], "user with this email already exists.")
		}
	}
	if len(fields) > 0 {
		return nil, "", apierr.Validation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Password:  string(hash),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}

	var tokenString string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		tok, err := as.getOrCreateToken(ctx, tx, user)
		if err != nil {
			return err
		}
		tokenString = tok
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	as.log.Info("user registered", "user_id", user.ID.String(), "email", user.Email)
	return user, tokenString, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", apierr.Unauthorized(errors.New("invalid credentials"))
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierr.Unauthorized(errors.New("invalid credentials"))
		}
		return "", fmt.Errorf("load user by email: %w", err)
	}
	if !user.IsActive {
		return "", apierr.Unauthorized(errors.New("invalid credentials"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierr.Unauthorized(errors.New("invalid credentials"))
	}

	var tokenString string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tok, err := as.getOrCreateToken(ctx, tx, user)
		if err != nil {
			return err
		}
		tokenString = tok
		return nil
	})
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized(errors.New("no authenticated user"))
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		return fmt.Errorf("delete user tokens: %w", err)
	}
	as.log.Info("user logged out", "user_id", rd.UserID.String())
	return nil
}

// ResolvePrincipal verifies the presented token and returns a context
// carrying the authenticated user. Validity is decided by the presence of
// the token row, so logout revokes the credential even though the JWT
// signature would still verify.
func (as *authService) ResolvePrincipal(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return nil, apierr.Unauthorized(errors.New("missing token"))
	}
	if _, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}); err != nil {
		return nil, apierr.Unauthorized(fmt.Errorf("invalid token: %w", err))
	}

	row, err := as.userTokenRepo.GetByToken(ctx, nil, tokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized(errors.New("invalid token"))
		}
		return nil, fmt.Errorf("look up token: %w", err)
	}
	user, err := as.userRepo.GetByID(ctx, nil, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized(errors.New("invalid token"))
		}
		return nil, fmt.Errorf("load token user: %w", err)
	}
	if !user.IsActive {
		return nil, apierr.Unauthorized(errors.New("inactive user"))
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		User:        user,
	}), nil
}

// getOrCreateToken returns the user's existing token or mints and persists a
// new one. Tokens are never rotated here.
func (as *authService) getOrCreateToken(ctx context.Context, tx *gorm.DB, user *types.User) (string, error) {
	existing, err := as.userTokenRepo.GetByUserID(ctx, tx, user.ID)
	if err == nil {
		return existing.Token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("look up user token: %w", err)
	}

	tok, err := as.signToken(user)
	if err != nil {
		return "", err
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, &types.UserToken{
		ID:     uuid.New(),
		UserID: user.ID,
		Token:  tok,
	}); err != nil {
		return "", fmt.Errorf("create user token: %w", err)
	}
	return tok, nil
}

func (as *authService) signToken(user *types.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"jti": uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
