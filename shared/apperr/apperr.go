package apperr

import "fmt"

// Kind separates caller-fixable rejections from engine failures and from
// policy defects that should never survive startup.
type Kind int

const (
	KindValidation Kind = iota
	KindConversion
	KindConfiguration
)

// Stable machine-readable codes carried in the failure envelope.
const (
	CodeNoFileProvided        = "NO_FILE_PROVIDED"
	CodeEmptyFile             = "EMPTY_FILE"
	CodeFileTooLarge          = "FILE_TOO_LARGE"
	CodeFileReadFailed        = "FILE_READ_FAILED"
	CodeUnsupportedMediaType  = "UNSUPPORTED_MEDIA_TYPE"
	CodeFilenameTooLong       = "FILENAME_TOO_LONG"
	CodeInvalidFilenameChars  = "INVALID_FILENAME_CHARACTERS"
	CodeExtensionMimeMismatch = "EXTENSION_MIME_MISMATCH"
	CodeQualityOutOfRange     = "QUALITY_OUT_OF_RANGE"
	CodeInvalidDimensions     = "INVALID_DIMENSIONS"
	CodeUnsupportedFormat     = "UNSUPPORTED_FORMAT"
	CodeConversionFailed      = "CONVERSION_FAILED"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a caller-fixable rejection with a message that is safe to
// show to an end user.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// Conversion wraps an engine failure. The wrapped cause is for server-side
// logs only and never reaches the caller.
func Conversion(message string, err error) *Error {
	return &Error{Kind: KindConversion, Code: CodeConversionFailed, Message: message, Err: err}
}
