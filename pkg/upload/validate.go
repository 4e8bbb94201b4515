package upload

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Detected is the sniffed type of an upload.
type Detected struct {
	MIME      string
	Extension string
}

// Image types accepted for photos and post images
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Attachment extensions accepted for post files
var attachmentExtensions = map[string]bool{
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".txt": true, ".pdf": true, ".rtf": true, ".zip": true, ".rar": true,
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true,
	".mp3": true, ".wav": true,
	".mp4": true, ".mkv": true, ".webm": true, ".mov": true, ".avi": true, ".mpg": true, ".mpeg": true,
}

// Detect sniffs the content type of data from its leading bytes.
func Detect(data []byte) Detected {
	m := mimetype.Detect(data)
	mime := m.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return Detected{MIME: mime, Extension: m.Extension()}
}

// ValidateImage accepts only raster image formats.
func ValidateImage(data []byte) (Detected, error) {
	d := Detect(data)
	if !imageMIMETypes[d.MIME] {
		return d, fmt.Errorf("%w: %s", ErrNotAllowed, d.MIME)
	}
	return d, nil
}

// ValidateAttachment accepts office documents, archives, images, audio and
// video. Content that cannot be identified (application/octet-stream) is
// rejected.
func ValidateAttachment(data []byte) (Detected, error) {
	d := Detect(data)
	if d.MIME == "application/octet-stream" || d.Extension == "" {
		return d, fmt.Errorf("%w: type could not be determined", ErrNotAllowed)
	}
	if !attachmentExtensions[strings.ToLower(d.Extension)] {
		return d, fmt.Errorf("%w: %s", ErrNotAllowed, d.Extension)
	}
	return d, nil
}

// AllowedAttachmentExtensions lists accepted attachment extensions for error messages.
func AllowedAttachmentExtensions() []string {
	exts := make([]string, 0, len(attachmentExtensions))
	for ext := range attachmentExtensions {
		exts = append(exts, ext)
	}
	return exts
}
