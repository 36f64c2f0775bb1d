package internal

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUsage           ErrorKind = "usage"
	KindInputResolution ErrorKind = "input_resolution"
	KindDecode          ErrorKind = "decode"
	KindExternalTool    ErrorKind = "external_tool"
	KindOutput          ErrorKind = "output"
)

// ErrWallpaperNotSet is returned when the desktop wallpaper setting does not hold a file URI.
var ErrWallpaperNotSet = errors.New("wallpaper is not set to a local file")

// Error is the typed error surfaced to main, which maps its Kind to an exit code
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewUsageError(format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

func NewInputResolutionError(message string, cause error) *Error {
	return &Error{Kind: KindInputResolution, Message: message, Cause: cause}
}

func NewDecodeError(path string, cause error) *Error {
	return &Error{Kind: KindDecode, Message: fmt.Sprintf("failed to read image %s", path), Cause: cause}
}

func NewExternalToolError(message string, cause error) *Error {
	return &Error{Kind: KindExternalTool, Message: message, Cause: cause}
}

func NewOutputError(message string, cause error) *Error {
	return &Error{Kind: KindOutput, Message: message, Cause: cause}
}

// KindOf reports the kind of the first *Error in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
