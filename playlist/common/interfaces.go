package common

import (
	"context"
	"time"
)

// FormatType represents the on-disk playlist format ('mpls', 'unsupported')
type FormatType string

const (
	FormatTypeMPLS        FormatType = "mpls"
	FormatTypeUnsupported FormatType = "unsupported"
)

// ClipStamp is one extracted (clip, recording timestamp) pair. The Date and
// Time strings render the raw timestamp bytes as two hex digits per field,
// matching the wire encoding bit-for-bit; Recorded is the decoded wall-clock
// time and is zero-valued when a timestamp byte is not valid packed BCD.
type ClipStamp struct {
	Clip       string    `json:"clip"`
	FileNumber uint16    `json:"file_number"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Recorded   time.Time `json:"recorded,omitzero"`
	Playlist   string    `json:"playlist"`
}

// String renders the stamp in the tool's fixed output format:
//
//	NNNNN.MTS  20YY/MM/DD  HH:MM:SS
func (c ClipStamp) String() string {
	return c.Clip + "  " + c.Date + "  " + c.Time
}

// PlaylistHandler defines the interface for handling one playlist format
type PlaylistHandler interface {
	// Type returns the playlist format this handler supports
	Type() FormatType

	// CanHandle determines if this handler can process the given path
	CanHandle(path string) bool

	// Extract reads the playlist at path and returns one ClipStamp per
	// well-formed descriptor. A non-nil error may accompany a non-empty
	// slice: records extracted before the failure remain valid.
	Extract(ctx context.Context, path string) ([]ClipStamp, error)
}

// PlaylistManager defines the interface for managing multiple playlist formats
type PlaylistManager interface {
	// CreateHandler creates a handler for the given playlist format
	CreateHandler(format FormatType) (PlaylistHandler, error)

	// DetectAndCreate detects the playlist format of path and creates the
	// appropriate handler
	DetectAndCreate(path string) (PlaylistHandler, error)

	// RegisterHandlerFactory registers a factory for a custom format
	RegisterHandlerFactory(format FormatType, factory func() PlaylistHandler) error

	// SupportedTypes returns a list of supported playlist formats
	SupportedTypes() []FormatType
}
