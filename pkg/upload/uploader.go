package upload

import (
	"context"
	"errors"
	"fmt"

	"corp-social-backend/pkg/antivirus"

	"github.com/google/uuid"
)

const (
	maxImageBytes      = 10 << 20
	maxAttachmentBytes = 25 << 20
)

var (
	// ErrStorageDisabled is returned when no Store was configured.
	ErrStorageDisabled = errors.New("upload: storage not configured")
	// ErrInfected is returned when the scanner flags an attachment.
	ErrInfected = errors.New("upload: file rejected by antivirus")
)

// Store persists bytes under a key and returns the public URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Uploader turns base64 payloads from API requests into stored media.
type Uploader struct {
	store        Store
	scanner      antivirus.Scanner
	maxDimension int
	quality      int
}

func NewUploader(store Store, maxDimension, quality int) *Uploader {
	return &Uploader{store: store, scanner: antivirus.NoOp{}, maxDimension: maxDimension, quality: quality}
}

// WithScanner makes attachments pass s before they are stored.
func (u *Uploader) WithScanner(s antivirus.Scanner) *Uploader {
	if s != nil {
		u.scanner = s
	}
	return u
}

// UploadImage validates, compresses and stores an image under prefix.
// Values that are already URLs are returned unchanged.
func (u *Uploader) UploadImage(ctx context.Context, prefix, encoded string) (string, error) {
	if IsRemoteURL(encoded) {
		return encoded, nil
	}
	if u.store == nil {
		return "", ErrStorageDisabled
	}

	data, err := DecodeBase64(encoded, maxImageBytes)
	if err != nil {
		return "", err
	}
	if _, err := ValidateImage(data); err != nil {
		return "", err
	}

	compressed, err := CompressImage(data, u.maxDimension, u.quality)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotAllowed, err)
	}

	key := fmt.Sprintf("%s/%s.jpg", prefix, uuid.NewString())
	return u.store.Put(ctx, key, "image/jpeg", compressed)
}

// UploadAttachment validates and stores an arbitrary document under prefix.
func (u *Uploader) UploadAttachment(ctx context.Context, prefix, encoded string) (string, error) {
	if IsRemoteURL(encoded) {
		return encoded, nil
	}
	if u.store == nil {
		return "", ErrStorageDisabled
	}

	data, err := DecodeBase64(encoded, maxAttachmentBytes)
	if err != nil {
		return "", err
	}
	detected, err := ValidateAttachment(data)
	if err != nil {
		return "", err
	}

	verdict, err := u.scanner.Scan(ctx, data)
	if err != nil {
		return "", err
	}
	if verdict.Infected {
		return "", fmt.Errorf("%w: %s", ErrInfected, verdict.ThreatName)
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), detected.Extension)
	return u.store.Put(ctx, key, detected.MIME, data)
}

// IsClientError reports whether err was caused by the submitted payload
// rather than by storage.
func IsClientError(err error) bool {
	return errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrNotAllowed) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrInfected)
}
