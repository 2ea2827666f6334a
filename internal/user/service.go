// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/onms-dev/crm-backend/internal/auth"
	"github.com/onms-dev/crm-backend/internal/core"
)

// CascadeUnassigner clears the BDM assignment on every applicant owned by a
// username. It is satisfied by the applicant repository and wired in main,
// keeping the two datasets decoupled at the package level.
type CascadeUnassigner interface {
	UnassignBDM(ctx context.Context, username string) (int, error)
}

type Service struct {
	repo    Repository
	cascade CascadeUnassigner
}

func NewService(repo Repository, cascade CascadeUnassigner) *Service {
	return &Service{repo: repo, cascade: cascade}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf(
			"create user: username cannot be empty: %w",
			core.ErrValidation,
		)
	}

	if req.Password == "" {
		return nil, fmt.Errorf(
			"create user: password cannot be empty: %w",
			core.ErrValidation,
		)
	}

	if !ValidRole(req.Role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			req.Role,
			core.ErrValidation,
		)
	}

	u := User{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Delete removes an account and orphans its applicant assignments. The
// applicants file is written first; the user row is only removed once that
// save succeeded, so a failure can at worst leave applicants unassigned
// early, never a deleted user with live assignments.
func (s *Service) Delete(
	ctx context.Context,
	actingUsername, username string,
) error {
	if username == actingUsername {
		return fmt.Errorf(
			"delete user: cannot delete your own account: %w",
			core.ErrForbidden,
		)
	}

	if _, err := s.repo.GetByUsername(ctx, username); err != nil {
		return err
	}

	unassigned, err := s.cascade.UnassignBDM(ctx, username)
	if err != nil {
		return fmt.Errorf("delete user: cascade: %w", err)
	}

	if unassigned > 0 {
		slog.Info("unassigned applicants from deleted user",
			"username", username,
			"count", unassigned,
		)
	}

	return s.repo.Delete(ctx, username)
}

func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Lookup exposes an account to the auth service, password included.
func (s *Service) Lookup(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &auth.UserInfo{
		Username: u.Username,
		Password: u.Password,
		Role:     u.Role,
	}, nil
}

var _ auth.UserProvider = (*Service)(nil)
