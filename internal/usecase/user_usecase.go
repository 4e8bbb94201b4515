package usecase

import (
	"context"
	"strings"
	"time"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/logger"
	"corp-social-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// birthdayYear stores (month, day) in a leap year so February 29 is valid.
const birthdayYear = 2000

// addressBookExportLimit bounds a single vCard export.
const addressBookExportLimit = 10000

type userUsecase struct {
	userRepo domain.UserRepository
	uploader domain.MediaUploader
	cache    domain.BirthdayCache
	validate *validator.Validate
}

func NewUserUsecase(userRepo domain.UserRepository, uploader domain.MediaUploader, cache domain.BirthdayCache, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		uploader: uploader,
		cache:    cache,
		validate: validate,
	}
}

func (u *userUsecase) List(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	return u.userRepo.Fetch(ctx, page.Limit, page.Offset)
}

func (u *userUsecase) Get(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *userUsecase) Update(ctx context.Context, actor domain.Actor, id string, in domain.UserUpdate) (*domain.User, error) {
	if actor.ID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if actor.ID != id {
		return nil, apperror.Forbidden("You can only edit your own profile")
	}

	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyString(&user.FirstName, in.FirstName)
	applyString(&user.LastName, in.LastName)
	applyString(&user.MiddleName, in.MiddleName)
	applyString(&user.JobTitle, in.JobTitle)
	applyString(&user.PersonalEmail, in.PersonalEmail)
	applyString(&user.CorporatePhoneNumber, in.CorporatePhoneNumber)
	applyString(&user.PersonalPhoneNumber, in.PersonalPhoneNumber)
	applyString(&user.Bio, in.Bio)
	applyString(&user.Department, in.Department)

	if in.BirthdayDay != nil || in.BirthdayMonth != nil {
		date, err := BirthdayFromParts(in.BirthdayDay, in.BirthdayMonth)
		if err != nil {
			return nil, err
		}
		user.BirthdayDate = &date
	}

	switch {
	case in.ClearPhoto:
		user.Photo = nil
	case in.Photo != nil:
		url, err := u.uploader.UploadImage(ctx, prefixUserPhotos, *in.Photo)
		if err != nil {
			return nil, uploadError(err)
		}
		user.Photo = &url
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Cached lists embed names and photos, not just dates
	if err := u.cache.Invalidate(ctx); err != nil {
		logger.Log.Warn("Birthday cache invalidation failed", "error", err)
	}
	return user, nil
}

// BirthdayFromParts builds the stored birthday from optional day and month.
// A missing part defaults to 1.
func BirthdayFromParts(day, month *int) (time.Time, error) {
	d, m := 1, 1
	if day != nil {
		d = *day
	}
	if month != nil {
		m = *month
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, apperror.BadRequest("invalid birthday")
	}
	date := time.Date(birthdayYear, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.Day() != d || int(date.Month()) != m {
		return time.Time{}, apperror.BadRequest("invalid birthday")
	}
	return date, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (u *userUsecase) ShortInfo(ctx context.Context, id string) (*domain.UserShortInfo, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := u.userRepo.CountPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.UserShortInfo{
		FirstName:  user.FirstName,
		MiddleName: user.MiddleName,
		JobTitle:   user.JobTitle,
		PostsCount: count,
	}, nil
}

func (u *userUsecase) AddressBook(ctx context.Context, search string, page domain.Page) ([]domain.User, int64, error) {
	return u.userRepo.SearchAddressBook(ctx, search, page.Limit, page.Offset)
}

func (u *userUsecase) AddressBookAll(ctx context.Context, search string) ([]domain.User, error) {
	users, _, err := u.userRepo.SearchAddressBook(ctx, search, addressBookExportLimit, 0)
	return users, err
}
