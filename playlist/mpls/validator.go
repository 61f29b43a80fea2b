package mpls

import (
	"io"

	"github.com/dphoyes/phototimeshift/logging"
	"github.com/dphoyes/phototimeshift/playlist/common"
)

// Validator checks the playlist file header before any descriptor is trusted:
// the 8-byte file signature, then the descriptor count byte at its fixed
// offset.
type Validator struct {
	config *Config
	logger logging.Logger
}

// NewValidator creates a new playlist validator with default configuration
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new playlist validator with custom configuration
func NewValidatorWithConfig(config *Config) *Validator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Validator{
		config: config,
		logger: logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger
func (v *Validator) SetLogger(logger logging.Logger) {
	v.logger = logger
}

// ValidateHeader reads the file signature and the descriptor count from a
// reader positioned at the start of the file. On success the reader is left
// one byte past the count byte.
func (v *Validator) ValidateHeader(sr *stickyReader, path string) (uint8, error) {
	var sig [len(FileSignature)]byte
	if _, err := sr.Read(sig[:]); err != nil {
		return 0, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeSignature, "could not read file signature, wrong filetype?", err)
	}

	if string(sig[:]) != FileSignature {
		return 0, common.NewPlaylistErrorWithFields(common.FormatTypeMPLS, path,
			common.ErrCodeSignature, "could not read file signature, wrong filetype?", nil,
			logging.Fields{"signature": string(sig[:])})
	}

	// The count byte sits at a fixed absolute offset; skip the gap between
	// the signature and it.
	if _, err := sr.Seek(descriptorCountOffset-int64(len(FileSignature)), io.SeekCurrent); err != nil {
		return 0, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeTruncated, "could not read contents", err)
	}

	count, err := sr.ReadByte()
	if err != nil {
		return 0, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeTruncated, "could not read contents", err)
	}

	v.logger.Debug("playlist header validated", logging.Fields{
		"path":             path,
		"descriptor_count": count,
	})

	return count, nil
}
