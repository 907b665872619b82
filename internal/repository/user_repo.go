package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pharmacare/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

const userColumns = `id, email, password_hash, name, phone, is_verified, created_at, updated_at`

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (email, password_hash, name, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_verified, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.Name, nullString(user.Phone)).
		Scan(&user.ID, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.log.Errorf("Failed to create user '%s': %v", user.Email, err)
		return nil, wrapStoreError("create user", err)
	}
	r.log.Infof("User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with email %s not found", email)
			return nil, fmt.Errorf("user %w", domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get user by email: %v", err)
		return nil, wrapStoreError("get user by email", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("User with ID %d not found", id)
			return nil, fmt.Errorf("user with id %d %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get user by ID %d: %v", id, err)
		return nil, wrapStoreError("get user by id", err)
	}
	return user, nil
}

func (r *postgresUserRepository) scanUser(s rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var phone sql.NullString
	err := s.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &phone,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	return user, nil
}
