package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	RegisterUser(ctx context.Context, name, email, password, phone string) (*domain.User, error)
	// AuthenticateUser checks credentials only; it issues no session or token.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int) (*domain.User, error)
}

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *userUseCase) RegisterUser(ctx context.Context, name, email, password, phone string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	if name == "" {
		uc.log.Warn("Use Case: Registration failed - empty name")
		return nil, fmt.Errorf("%w: user name cannot be empty", domain.ErrInvalidInput)
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		uc.log.Warnf("Use Case: Registration failed - %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	user, err := uc.userRepo.CreateUser(ctx, &domain.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %d", user.ID)
	return user, nil
}

func (uc *userUseCase) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) || password == "" {
		uc.log.Warnf("Use Case: Auth failed - invalid email or empty password for %s", email)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user ID %d", user.ID)
			return nil, domain.ErrInvalidCredentials
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user ID %d: %v", user.ID, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user ID %d", user.ID)
	return user, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("user with id %d %w", id, domain.ErrNotFound)
	}
	return uc.userRepo.GetUserByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
