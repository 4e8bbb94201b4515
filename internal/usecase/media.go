package usecase

import (
	"errors"

	"corp-social-backend/pkg/antivirus"
	"corp-social-backend/pkg/apperror"
	"corp-social-backend/pkg/upload"
)

// Storage prefixes for uploaded media
const (
	prefixUserPhotos = "users/photos"
	prefixPostImages = "posts/images"
	prefixPostFiles  = "posts/files"
)

// uploadError maps upload failures onto HTTP-facing errors.
func uploadError(err error) error {
	switch {
	case upload.IsClientError(err):
		return apperror.BadRequest(err.Error())
	case errors.Is(err, upload.ErrStorageDisabled):
		return apperror.ServiceUnavailable("File storage is not configured", err)
	case errors.Is(err, antivirus.ErrUnavailable):
		return apperror.ServiceUnavailable("File scanning is unavailable, try again later", err)
	default:
		return apperror.Internal(err)
	}
}
