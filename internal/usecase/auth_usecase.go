package usecase

import (
	"context"
	"net/http"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/clock"
	"corp-social-backend/pkg/logger"
)

type authUsecase struct {
	userRepo domain.UserRepository
	clock    clock.Clock
}

func NewAuthUsecase(userRepo domain.UserRepository, clk clock.Clock) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, clock: clk}
}

// EnsureUserExists creates the local profile for a token subject on first
// sync and returns the stored profile.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !apperror.HasCode(err, http.StatusNotFound) {
		return nil, err
	}

	user.IsActive = true
	user.DateJoined = u.clock.Now()
	if err := u.userRepo.Create(ctx, user); err != nil {
		// Concurrent first requests race on the insert
		if apperror.HasCode(err, http.StatusConflict) {
			return u.userRepo.GetByID(ctx, user.ID)
		}
		return nil, err
	}
	logger.Log.Info("User profile created", "user_id", user.ID)

	return u.userRepo.GetByID(ctx, user.ID)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
