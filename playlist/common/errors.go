package common

import (
	"maps"

	"github.com/dphoyes/phototimeshift/logging"
)

// PlaylistError represents playlist-related errors with integrated logging
type PlaylistError struct {
	Format  FormatType     `json:"format"`
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Fields  logging.Fields `json:"fields,omitempty"`
}

func (e *PlaylistError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *PlaylistError) Unwrap() error {
	return e.Cause
}

// Log logs this error using the global logger
func (e *PlaylistError) Log() {
	e.LogWith(logging.GetGlobalLogger())
}

// LogWith logs this error using a specific logger
func (e *PlaylistError) LogWith(logger logging.Logger) {
	fields := logging.Fields{
		"format":     string(e.Format),
		"path":       e.Path,
		"error_code": e.Code,
	}

	maps.Copy(fields, e.Fields)

	logger.Error(e.Cause, e.Message, fields)
}

// Common error codes
const (
	// ErrCodeDirectory is fatal to a run: the target directory cannot be
	// entered or listed. All other codes are scoped to a single file.
	ErrCodeDirectory = "DIRECTORY_FAILED"
	// ErrCodeOpen means one candidate file could not be opened
	ErrCodeOpen = "OPEN_FAILED"
	// ErrCodeSignature means the file-level magic bytes are wrong or missing
	ErrCodeSignature = "BAD_SIGNATURE"
	// ErrCodeTruncated means EOF was hit before a fixed-size read completed
	ErrCodeTruncated = "TRUNCATED"
	// ErrCodeParse means a descriptor sub-signature or timestamp field was malformed
	ErrCodeParse = "PARSE_FAILED"
	// ErrCodeUnsupported means no registered handler accepts the file
	ErrCodeUnsupported = "UNSUPPORTED_FORMAT"
)

// NewPlaylistError creates a new playlist error
func NewPlaylistError(format FormatType, path, code, message string, cause error) *PlaylistError {
	return &PlaylistError{
		Format:  format,
		Path:    path,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  make(logging.Fields),
	}
}

// NewPlaylistErrorWithFields creates a new playlist error with additional fields
func NewPlaylistErrorWithFields(format FormatType, path, code, message string, cause error, fields logging.Fields) *PlaylistError {
	return &PlaylistError{
		Format:  format,
		Path:    path,
		Code:    code,
		Message: message,
		Cause:   cause,
		Fields:  fields,
	}
}
