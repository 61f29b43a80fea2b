package playlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/dphoyes/phototimeshift/logging"
	"github.com/dphoyes/phototimeshift/playlist/common"
	"github.com/dphoyes/phototimeshift/playlist/mpls"
)

// Scanner walks one directory of recorder playlists and collects every clip
// stamp the registered handlers can extract. Files are processed strictly
// sequentially in lexicographic name order, so two runs over an unmodified
// directory produce identical output. The scanner never changes the process
// working directory; all paths are resolved against the scanned directory.
type Scanner struct {
	factory *Factory
	config  *mpls.Config
	logger  logging.Logger
}

// NewScanner creates a directory scanner with default configuration
func NewScanner() *Scanner {
	return NewScannerWithConfig(nil)
}

// NewScannerWithConfig creates a directory scanner with custom configuration
func NewScannerWithConfig(config *mpls.Config) *Scanner {
	if config == nil {
		config = mpls.DefaultConfig()
	}
	return &Scanner{
		factory: NewFactoryWithConfig(config),
		config:  config,
		logger:  logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger
func (s *Scanner) SetLogger(logger logging.Logger) {
	s.logger = logger
}

// Factory returns the handler registry backing this scanner, so callers can
// register additional playlist formats before scanning.
func (s *Scanner) Factory() *Factory {
	return s.factory
}

// Scan extracts clip stamps from every playlist in dir. A directory that
// cannot be read fails the whole run; any failure scoped to one file is
// logged, that file contributes whatever records were decoded before the
// failure, and the scan moves on. A directory with no matching files yields
// an empty result and no error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]common.ClipStamp, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	logger := s.logger.WithFields(logging.Fields{
		"run_id": uuid.NewString(),
		"dir":    dir,
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewPlaylistError(common.FormatTypeUnsupported, dir,
			common.ErrCodeDirectory, "error reading directory", err)
	}

	// os.ReadDir sorts by name already; re-sorting keeps the ordering
	// contract independent of that implementation detail.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var stamps []common.ClipStamp

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return stamps, err
		}

		name := entry.Name()

		handler, err := s.factory.DetectAndCreate(name)
		if err != nil {
			// Not a playlist; an expected filter outcome, not an error
			continue
		}

		path := filepath.Join(dir, name)
		fileStamps, err := handler.Extract(ctx, path)
		stamps = append(stamps, fileStamps...)

		if err != nil {
			s.logFileError(logger, path, err)
			continue
		}

		logger.Debug("playlist processed", logging.Fields{
			"file":   name,
			"stamps": len(fileStamps),
		})
	}

	return stamps, nil
}

func (s *Scanner) logFileError(logger logging.Logger, path string, err error) {
	var perr *common.PlaylistError
	if errors.As(err, &perr) {
		perr.LogWith(logger)
		return
	}
	logger.Error(err, "playlist processing failed", logging.Fields{"path": path})
}
