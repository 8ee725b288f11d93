package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/investmetic/investmetic/internal/platform/httpx"
)

// Service handles account profile business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// GetProfile returns the caller's account.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfileInput carries editable profile fields.
type UpdateProfileInput struct {
	Nickname string
	Phone    string
	ImageURL string
}

// UpdateProfile changes nickname, phone and profile image. Nicknames must be
// unique across accounts.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname required", httpx.ErrValidation)
	}
	if nickname != user.Nickname {
		existing, err := s.repo.FindByNickname(ctx, nickname)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("check nickname: %w", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, fmt.Errorf("%w: nickname already in use", httpx.ErrDuplicate)
		}
	}

	if err := s.repo.UpdateProfile(ctx, userID, nickname, in.Phone, in.ImageURL); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

// ChangePassword verifies the current password and stores a new bcrypt hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("%w: current password mismatch", httpx.ErrForbidden)
	}
	if len(next) < 8 {
		return fmt.Errorf("%w: password too short", httpx.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// Withdraw soft-deletes the account. The row is kept so that authored
// inquiries stay resolvable.
func (s *Service) Withdraw(ctx context.Context, userID int64) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.repo.Withdraw(ctx, userID, time.Now())
}
