package validator

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
)

type authValidator struct {
	users repository.UserRepository
	v     *validator.Validate
}

// the usecase is injected as an interface
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users, v: validator.New()}
}

func (a *authValidator) field(name string, value string, rules string) error {
	err := a.v.Var(value, rules)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	return usecase.NewValidationError(name, message(ves[0]))
}

// ValidateRegister also rejects an email that is already registered.
func (a *authValidator) ValidateRegister(ctx context.Context, email string, password string) error {
	if err := a.field("email", email, "required,email,max=255"); err != nil {
		return err
	}
	// bcrypt ignores bytes past 72
	if err := a.field("password", password, "required,min=8,max=72"); err != nil {
		return err
	}

	_, err := a.users.FindByEmail(ctx, email)
	if err == nil {
		return usecase.ErrConflict
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func (a *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if err := a.field("email", email, "required,email"); err != nil {
		return err
	}
	return a.field("password", password, "required")
}
