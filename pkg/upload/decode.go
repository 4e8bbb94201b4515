package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned for an empty payload.
	ErrEmpty = errors.New("upload: empty payload")
	// ErrTooLarge is returned when the decoded payload exceeds the limit.
	ErrTooLarge = errors.New("upload: payload too large")
	// ErrNotAllowed is returned when the content type is not accepted.
	ErrNotAllowed = errors.New("upload: file type not allowed")
	// ErrMalformed is returned when the payload is not valid base64.
	ErrMalformed = errors.New("upload: malformed payload")
)

// DecodeBase64 decodes a data URI ("data:image/png;base64,....") or a bare
// base64 string. The MIME type declared in a data URI is ignored; content is
// sniffed later.
func DecodeBase64(encoded string, maxBytes int) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: data URI without comma", ErrMalformed)
		}
		if !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrMalformed)
		}
		payload = payload[comma+1:]
	}
	if payload == "" {
		return nil, ErrEmpty
	}
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return nil, ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients strip padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// IsRemoteURL reports whether value already points at stored media, in
// which case it is kept instead of being decoded.
func IsRemoteURL(value string) bool {
	return strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "http://")
}
