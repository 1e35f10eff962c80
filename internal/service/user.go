package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/media"
	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

// UserService handles signup, login and profile business logic.
// Credential operations are delegated to the identity gateway; this
// service only orchestrates them with the user profile rows.
type UserService struct {
	repo    *repository.Repository
	gateway *gateway.Client
	media   *media.Uploader
	logger  *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, gw *gateway.Client, uploader *media.Uploader, logger *slog.Logger) *UserService {
	return &UserService{
		repo:    repo,
		gateway: gw,
		media:   uploader,
		logger:  logger,
	}
}

// SignupInput defines input for registering a new user.
type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Signup registers a new user.
// Duplicate email/username is rejected before any gateway or store
// mutation, so a failed signup never leaves a partial user behind.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (string, error) {
	if err := requireFields(
		[]string{"name", "username", "email", "password"},
		[]string{input.Name, input.Username, input.Email, input.Password},
	); err != nil {
		return "", err
	}

	emailTaken, err := s.repo.EmailExists(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if emailTaken {
		return "", ErrEmailTaken
	}

	usernameTaken, err := s.repo.UsernameExists(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if usernameTaken {
		return "", ErrUsernameTaken
	}

	identity, err := s.gateway.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		ID:        identity.UserID,
		Name:      input.Name,
		Username:  input.Username,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Lost the race on uniqueness between the pre-checks and the insert.
		if errors.Is(err, repository.ErrEmailExists) {
			return "", ErrEmailTaken
		}
		if errors.Is(err, repository.ErrUsernameExists) {
			return "", ErrUsernameTaken
		}
		return "", err
	}

	return identity.UserID, nil
}

// Login exchanges email+password for an access token via the gateway.
func (s *UserService) Login(ctx context.Context, email, password string) (*gateway.Session, error) {
	if err := requireFields(
		[]string{"email", "password"},
		[]string{email, password},
	); err != nil {
		return nil, err
	}

	return s.gateway.SignInWithPassword(ctx, email, password)
}

// Profile returns the caller's user row.
func (s *UserService) Profile(ctx context.Context, callerID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the caller's name and username.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, name, username string) (*model.User, error) {
	if err := requireFields(
		[]string{"name", "username"},
		[]string{name, username},
	); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateUserProfile(ctx, callerID, name, username); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameTaken
		default:
			return nil, err
		}
	}

	return s.Profile(ctx, callerID)
}

// UploadProfilePicture stores the image and records its URL on the profile.
// Avatar objects get a fresh name per upload, so the replaced object is
// removed afterwards; removal failures only strand an unreferenced object.
func (s *UserService) UploadProfilePicture(ctx context.Context, callerID string, img *ImageUpload) (string, error) {
	user, err := s.repo.GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ext := path.Ext(img.Filename)
	objectName := "avatars/" + callerID + "-" + uuid.NewString() + ext

	url, err := s.media.Upload(ctx, objectName, img.Reader, img.Size, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}

	if err := s.repo.UpdateProfilePicture(ctx, callerID, url); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if old := user.ProfilePictureURL; old != "" && old != url {
		if name, ok := s.media.ObjectName(old); ok {
			if err := s.media.Remove(ctx, name); err != nil {
				s.logger.Warn("failed to remove replaced profile picture", "object", name, "error", err)
			}
		}
	}

	return url, nil
}

// ChangePassword sets a new password for the caller through the gateway's
// admin API. Only the authenticated caller's own credential is touched.
func (s *UserService) ChangePassword(ctx context.Context, callerID, newPassword string) error {
	if err := requireFields(
		[]string{"new_password"},
		[]string{newPassword},
	); err != nil {
		return err
	}

	return s.gateway.AdminUpdatePassword(ctx, callerID, newPassword)
}

// ForgotPassword asks the gateway to email a password reset link.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if err := requireFields(
		[]string{"email"},
		[]string{email},
	); err != nil {
		return err
	}

	return s.gateway.SendPasswordReset(ctx, email)
}

// Contact records a free-form message from the caller.
func (s *UserService) Contact(ctx context.Context, callerID, subject, message string) error {
	if err := requireFields(
		[]string{"message"},
		[]string{message},
	); err != nil {
		return err
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		UserID:    callerID,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.CreateContactMessage(ctx, msg)
}

// NewImageUpload builds an ImageUpload from a multipart file.
// Shared by the profile picture and recipe image paths.
func NewImageUpload(filename, contentType string, size int64, r io.Reader) *ImageUpload {
	return &ImageUpload{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Reader:      r,
	}
}
