package mpls

import (
	"context"
	"os"
	"strings"

	"github.com/dphoyes/phototimeshift/logging"
	"github.com/dphoyes/phototimeshift/playlist/common"
)

// Handler implements PlaylistHandler for camcorder MPLS playlists. Each call
// to Extract opens, validates, walks and closes one file; the handler keeps
// no per-file state and is safe to reuse across files.
type Handler struct {
	config    *Config
	validator *Validator
	walker    *Walker
	extractor *StampExtractor
	logger    logging.Logger
}

// NewHandler creates a new playlist handler with default configuration
func NewHandler() *Handler {
	return NewHandlerWithConfig(nil)
}

// NewHandlerWithConfig creates a new playlist handler with custom configuration
func NewHandlerWithConfig(config *Config) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config:    config,
		validator: NewValidatorWithConfig(config),
		walker:    NewWalkerWithConfig(config.Walker),
		extractor: NewStampExtractorWithConfig(config.Timezone),
		logger:    logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger on the handler and its parts
func (h *Handler) SetLogger(logger logging.Logger) {
	h.logger = logger
	h.validator.SetLogger(logger)
	h.walker.SetLogger(logger)
}

// Type returns the playlist format for this handler
func (h *Handler) Type() common.FormatType {
	return common.FormatTypeMPLS
}

// CanHandle determines if this handler can process the given path.
// The suffix match is case-sensitive: camcorders write ".MPL" exactly.
func (h *Handler) CanHandle(path string) bool {
	return strings.HasSuffix(path, h.config.Scanner.Suffix)
}

// Extract reads the playlist at path and returns one stamp per well-formed
// descriptor. When a descriptor fails mid-file the stamps decoded before it
// are returned alongside the error.
func (h *Handler) Extract(ctx context.Context, path string) ([]common.ClipStamp, error) {
	playlist, err := h.Parse(ctx, path)
	if playlist == nil {
		return nil, err
	}

	var tz TimezoneTable
	if h.config.Timezone.EnableSidecar {
		tz = LoadTimezoneTable(path)
	}

	return h.extractor.ExtractStamps(playlist, tz), err
}

// Parse reads and decodes the playlist at path. Like Extract, a mid-file
// descriptor failure returns the partially decoded playlist alongside the
// error; header failures return a nil playlist.
func (h *Handler) Parse(ctx context.Context, path string) (*Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeOpen, "error opening file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeOpen, "error opening file", err)
	}

	sr := newStickyReader(f)

	count, err := h.validator.ValidateHeader(sr, path)
	if err != nil {
		return nil, err
	}

	playlist := &Playlist{
		Path:            path,
		Size:            info.Size(),
		DescriptorCount: count,
	}

	playlist.Descriptors, err = h.walker.Walk(sr, playlist.Size, count, path)
	return playlist, err
}
