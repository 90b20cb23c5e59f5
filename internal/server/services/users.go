// Package services contains server-side business logic. UserService handles
// registration, login and profile lookup, and issues a session token on
// every successful registration or login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TokenIssuer mints a session token for a user id.
type TokenIssuer interface {
	Issue(subjectID string) (string, error)
}

// PasswordHasher hashes new passwords and checks candidates against stored
// hashes. Burn does the work of a failed check without a stored hash.
type PasswordHasher interface {
	Hash(password string) ([]byte, error)
	VerifyPassword(hash []byte, candidate string) bool
	Burn(candidate string) bool
}

// AuthResult is what a successful registration or login hands back.
type AuthResult struct {
	User  models.UserView `json:"user"`
	Token string          `json:"token"`
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
// - GetProfile: load the account behind a verified identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	passwords   PasswordHasher
	logger      logging.Logger
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, passwords PasswordHasher, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		passwords:   passwords,
		logger:      l.With("module", "user_service"),
	}
}

type registerInput struct {
	Name     string
	Email    string
	Password string
}

func (in registerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

type loginInput struct {
	Email    string
	Password string
}

func (in loginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Register creates an account and returns it with a fresh token.
// It fails with common.ErrorValidation when a field is empty and
// common.ErrorAlreadyExists when the email is taken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if err := (registerInput{Name: name, Email: email, Password: password}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		user, err = repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "register", "error", err)
		return nil, common.ErrorInternal
	}

	return s.authResult(ctx, user)
}

// Login checks the credentials and returns the account with a fresh token.
// Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := (loginInput{Email: email, Password: password}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt cost as a wrong password
			s.passwords.Burn(password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "login lookup", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.passwords.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return s.authResult(ctx, user)
}

// GetProfile returns the sanitized account for a verified identity, or
// common.ErrorNotFound if it no longer exists.
func (s *UserService) GetProfile(ctx context.Context, id auth.Identity) (*models.UserView, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "profile lookup", "error", err, "user_id", id.ID)
		return nil, common.ErrorInternal
	}

	view := user.View()
	return &view, nil
}

func (s *UserService) authResult(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "issue token", "error", err, "user_id", user.ID)
		return nil, common.ErrorInternal
	}
	return &AuthResult{User: user.View(), Token: token}, nil
}
