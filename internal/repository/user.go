package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tastebase/tastebase/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// CreateUser inserts a new user into the database.
// The id must be the subject id issued by the identity gateway.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, username, email, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.IsAdmin,
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			if contains(err.Error(), "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, username, email, is_admin, COALESCE(profile_picture_url, ''), created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.IsAdmin,
		&user.ProfilePictureURL,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by their email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, username, email, is_admin, COALESCE(profile_picture_url, ''), created_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.IsAdmin,
		&user.ProfilePictureURL,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// SetAdmin flips the admin flag on a user.
func (r *Repository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET is_admin = $2 WHERE id = $1`, id, isAdmin)
	if err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EmailExists reports whether a user row with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UsernameExists reports whether a user row with the given username exists.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (r *Repository) UpdateUserProfile(ctx context.Context, id, name, username string) error {
	query := `
		UPDATE users
		SET name = $2, username = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, name, username)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateProfilePicture sets the user's profile picture URL.
func (r *Repository) UpdateProfilePicture(ctx context.Context, id, url string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_picture_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListUsers retrieves all users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, name, username, email, is_admin, COALESCE(profile_picture_url, ''), created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// SearchUsersByUsername retrieves users whose username contains the query,
// case-insensitively.
func (r *Repository) SearchUsersByUsername(ctx context.Context, q string) ([]*model.User, error) {
	query := `
		SELECT id, name, username, email, is_admin, COALESCE(profile_picture_url, ''), created_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
	`

	rows, err := r.pool.Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// DeleteUser removes a user row. Owned recipes, comments, saved recipes and
// reports cascade through foreign keys.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUsers(rows pgx.Rows) ([]*model.User, error) {
	users := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.Email,
			&user.IsAdmin,
			&user.ProfilePictureURL,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}
