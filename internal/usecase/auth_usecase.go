package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	//401 bad credentials
	ErrUnauthorized = errors.New("unauthorized")
	//403 disabled user
	ErrForbidden = errors.New("forbidden")
	//409 duplicate email
	ErrConflict = errors.New("conflict")
)

// AuthValidator checks register/login input before any password work.
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type AccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRegisterResponse struct {
	User UserOutput `json:"user"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserOutput     `json:"user"`
	Token AccessTokenDTO `json:"token"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
	now       func() time.Time
}

func NewAuthUsecase(cfg config.Config, users repository.UserRepository, validator AuthValidator) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if err := u.validator.ValidateRegister(ctx, email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.createUser(ctx, email, req.Password, model.RoleUser)
	if err != nil {
		return nil, err
	}
	return &AuthRegisterResponse{User: toUserOutput(user)}, nil
}

func (u *AuthUsecase) createUser(ctx context.Context, email string, password string, role model.Role) (*model.User, error) {
	//only the bcrypt hash is stored
	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(pwHash),
		Role:         role,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	email := normalizeEmail(req.Email)
	if err := u.validator.ValidateLogin(ctx, email, req.Password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	//disabled users cannot log in
	if !user.IsActive {
		return nil, ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	now := u.now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	token, expiresIn, err := u.issueAccessToken(user, now)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthLoginResponse{
		User: toUserOutput(user),
		Token: AccessTokenDTO{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
	}, nil
}

// SeedStaff makes sure a staff account exists for email. An existing user
// with that email is promoted; the password is only set on creation.
func (u *AuthUsecase) SeedStaff(ctx context.Context, email string, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role == model.RoleStaff {
			return nil
		}
		existing.Role = model.RoleStaff
		return u.users.Update(ctx, existing)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	_, err = u.createUser(ctx, email, password, model.RoleStaff)
	return err
}

// claims: sub (user id), role, iat, exp
func (u *AuthUsecase) issueAccessToken(user *model.User, now time.Time) (string, int, error) {
	ttl := u.cfg.AccessTokenTTL
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int(ttl.Seconds()), nil
}
