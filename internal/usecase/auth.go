package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/askarbek/carvault/internal/domain"
	"github.com/askarbek/carvault/internal/email"
	"github.com/askarbek/carvault/internal/repository"
	"github.com/askarbek/carvault/internal/token"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users  repository.UserRepository
	tokens *token.Service
	email  email.Sender
}

func NewAuthUsecase(users repository.UserRepository, tokens *token.Service, emailSender email.Sender) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, email: emailSender}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register hashes the password and persists the new user. The welcome email
// is best effort and never fails the registration.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	subject := "Welcome to CarVault"
	body := fmt.Sprintf("<p>Hi %s, your account is ready. Happy listing!</p>", user.Username)
	_ = u.email.Send(ctx, user.Email, subject, body)

	return user, nil
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: signed, User: user}, nil
}

func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
