package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/model"
)

// CreateUser inserts a new user and returns the full row.
// The unique constraint on email surfaces as an error here.
func (s *pgStore) CreateUser(name, email, hashedPassword string) (*model.User, error) {
	var u model.User
	query := `
	INSERT INTO users (name, email, hashed_password, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id, name, email, hashed_password, created_at, updated_at;
	`
	if err := s.db.Get(&u, query, name, email, hashedPassword); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches a user by email. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, name, email, hashed_password, created_at, updated_at
	FROM users
	WHERE email = $1;
	`
	err := s.db.Get(&u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches a user by ID. Returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, name, email, hashed_password, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := s.db.Get(&u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}
