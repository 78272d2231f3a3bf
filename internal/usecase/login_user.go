package usecase

import (
	"context"
	"errors"
	"fmt"

	"logistics-crm/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for an unknown username or wrong password.
// Handlers map it to 401 without distinguishing the two cases.
var ErrBadCredentials = errors.New("invalid username or password")

type LoginUser struct {
	userRepo UserRepo
	tokens   *auth.TokenResolver
}

func NewLoginUser(userRepo UserRepo, tokens *auth.TokenResolver) *LoginUser {
	return &LoginUser{userRepo: userRepo, tokens: tokens}
}

type LoginUserParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (uc *LoginUser) Execute(ctx context.Context, params LoginUserParams) (string, error) {
	u, err := uc.userRepo.GetByUsername(ctx, params.Username)
	if errors.Is(err, ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(params.Password)) != nil {
		return "", ErrBadCredentials
	}

	return uc.tokens.Issue(u.ID, tokenTTL), nil
}
