package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"imgconv/api/model"
	"imgconv/config"
	"imgconv/shared/apperr"
)

// allowedExtensions maps every accepted input media type to the filename
// extensions it may legitimately carry. The keys double as the input
// allow-list: a media type missing from this table is rejected, never the
// other way around.
var allowedExtensions = map[string][]string{
	"image/jpeg":    {"jpg", "jpeg"},
	"image/jpg":     {"jpg", "jpeg"},
	"image/png":     {"png"},
	"image/webp":    {"webp"},
	"image/avif":    {"avif"},
	"image/tiff":    {"tif", "tiff"},
	"image/gif":     {"gif"},
	"image/svg+xml": {"svg"},
}

// Validator gates every inbound request before any conversion work is
// attempted. All checks are pure and server-authoritative; client-side
// equivalents are advisory UX only.
type Validator struct {
	config *config.Config
}

func New(c *config.Config) *Validator {
	return &Validator{config: c}
}

// File checks presence, declared size, declared media type and the filename
// against policy. The original filename must already be in canonical
// sanitized form, merely sanitizable is not good enough.
func (v *Validator) File(file *model.UploadedFile) error {
	if file == nil {
		return apperr.Validation(apperr.CodeNoFileProvided, "No file provided")
	}
	if file.Size == 0 {
		return apperr.Validation(apperr.CodeEmptyFile, "Uploaded file is empty")
	}
	if file.Size > v.config.MaxUploadSizeBytes {
		return apperr.Validation(apperr.CodeFileTooLarge,
			fmt.Sprintf("File size exceeds %dMB limit", v.config.MaxUploadSizeBytes/(1024*1024)))
	}

	mediaType := normalizeMediaType(file.ContentType)
	if _, ok := allowedExtensions[mediaType]; !ok {
		return apperr.Validation(apperr.CodeUnsupportedMediaType,
			fmt.Sprintf("Unsupported media type: %s", file.ContentType))
	}

	// The maximum is counted in characters, not bytes, so a multibyte name
	// is judged on its charset rather than its encoding length.
	if utf8.RuneCountInString(file.Filename) > v.config.MaxFilenameLength {
		return apperr.Validation(apperr.CodeFilenameTooLong,
			fmt.Sprintf("Filename exceeds %d characters", v.config.MaxFilenameLength))
	}
	if Sanitize(file.Filename, v.config.MaxFilenameLength) != file.Filename {
		return apperr.Validation(apperr.CodeInvalidFilenameChars,
			"Filename contains invalid characters")
	}

	return nil
}

// Quality parses the optional string-encoded quality. Absence is valid; a
// present value must be an integer in [1,100].
func (v *Validator) Quality(raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}

	quality, err := strconv.Atoi(raw)
	if err != nil || quality < 1 || quality > 100 {
		return 0, false, apperr.Validation(apperr.CodeQualityOutOfRange,
			"Quality must be an integer between 1 and 100")
	}

	return quality, true, nil
}

// Dimension parses an optional string-encoded width or height. A present
// value must be a positive integer not exceeding the configured ceiling.
func (v *Validator) Dimension(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	d, err := strconv.Atoi(raw)
	if err != nil || d < 1 || d > v.config.MaxDimension {
		return 0, apperr.Validation(apperr.CodeInvalidDimensions,
			fmt.Sprintf("Width and height must be positive integers up to %d", v.config.MaxDimension))
	}

	return d, nil
}

// ExtensionMatchesType verifies the filename extension agrees with the
// declared media type.
func (v *Validator) ExtensionMatchesType(filename, contentType string) error {
	ext := strings.ToLower(extension(filename))

	for _, allowed := range allowedExtensions[normalizeMediaType(contentType)] {
		if ext == allowed {
			return nil
		}
	}

	return apperr.Validation(apperr.CodeExtensionMimeMismatch,
		fmt.Sprintf("File extension %q does not match media type %q", ext, contentType))
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx+1:]
}

func normalizeMediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
