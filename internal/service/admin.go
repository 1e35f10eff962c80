package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tastebase/tastebase/internal/gateway"
	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

// AdminService handles moderation operations.
// Authorization (the admin gate) happens in middleware before any of
// these run; the service assumes an admin caller.
type AdminService struct {
	repo    *repository.Repository
	gateway *gateway.Client
	logger  *slog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo *repository.Repository, gw *gateway.Client, logger *slog.Logger) *AdminService {
	return &AdminService{
		repo:    repo,
		gateway: gw,
		logger:  logger,
	}
}

// ListUsers returns all users, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser returns a single user by id.
func (s *AdminService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SearchUsers returns users whose username matches the query.
// An empty query falls back to the full listing.
func (s *AdminService) SearchUsers(ctx context.Context, query string) ([]*model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListUsers(ctx)
	}
	return s.repo.SearchUsersByUsername(ctx, query)
}

// RemoveUser deletes a user's profile row and then its gateway credential.
// The store delete runs first; if the gateway delete fails afterwards the
// orphaned credential is logged and surfaced so the operation can be rerun.
func (s *AdminService) RemoveUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.gateway.AdminDeleteUser(ctx, id); err != nil {
		// The gateway treating the subject as already gone is fine.
		if errors.Is(err, gateway.ErrUserNotFound) {
			return nil
		}
		s.logger.Error("user row deleted but gateway credential remains",
			"user_id", id,
			"error", err,
		)
		return err
	}

	return nil
}

// ListContactMessages returns all contact messages, newest first.
func (s *AdminService) ListContactMessages(ctx context.Context) ([]*model.ContactMessage, error) {
	return s.repo.ListContactMessages(ctx)
}

// RemoveContactMessage deletes a contact message.
func (s *AdminService) RemoveContactMessage(ctx context.Context, id string) error {
	if err := s.repo.DeleteContactMessage(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

// ListReports returns all reports with reporter and recipe expanded,
// newest first.
func (s *AdminService) ListReports(ctx context.Context) ([]*model.Report, error) {
	return s.repo.ListReports(ctx)
}

// RemoveReport deletes a report.
func (s *AdminService) RemoveReport(ctx context.Context, id string) error {
	if err := s.repo.DeleteReport(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	return nil
}
