package imaging

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EncodedImage is a transport-safe representation of raw image bytes.
type EncodedImage struct {
	Base64 string
	MIME   string
}

var eligibleExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Eligible reports whether the file name carries a supported image extension.
// The check is case-insensitive.
func Eligible(name string) bool {
	_, ok := eligibleExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MIMEForPath returns the MIME type implied by the file extension, or an
// empty string for unsupported extensions.
func MIMEForPath(path string) string {
	return eligibleExtensions[strings.ToLower(filepath.Ext(path))]
}

// EncodeFile reads the file at path fully into memory and returns its base64
// encoding together with the extension-derived MIME type. Callers treat an
// error as "skip this image".
func EncodeFile(path string) (EncodedImage, error) {
	mime := MIMEForPath(path)
	if mime == "" {
		return EncodedImage{}, fmt.Errorf("encode image %s: unsupported extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("encode image %s: %w", path, err)
	}
	return EncodedImage{
		Base64: base64.StdEncoding.EncodeToString(data),
		MIME:   mime,
	}, nil
}

// DataURL renders the encoded image as a data URL suitable for embedding in
// a chat-completion request body.
func (e EncodedImage) DataURL() string {
	return "data:" + e.MIME + ";base64," + e.Base64
}
