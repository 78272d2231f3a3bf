package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics-crm/internal/auth"
	"logistics-crm/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type RegisterUser struct {
	userRepo UserRepo
	tokens   *auth.TokenResolver
}

func NewRegisterUser(userRepo UserRepo, tokens *auth.TokenResolver) *RegisterUser {
	return &RegisterUser{userRepo: userRepo, tokens: tokens}
}

type RegisterUserParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Execute creates the account and returns a bearer token for it.
func (uc *RegisterUser) Execute(ctx context.Context, params RegisterUserParams) (string, error) {
	if params.Username == "" || params.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := uc.userRepo.GetByUsername(ctx, params.Username); err == nil {
		return "", fmt.Errorf("%w: username already registered", ErrValidation)
	} else if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Username:     params.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return uc.tokens.Issue(u.ID, tokenTTL), nil
}
