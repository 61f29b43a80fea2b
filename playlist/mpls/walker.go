package mpls

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dphoyes/phototimeshift/logging"
	"github.com/dphoyes/phototimeshift/playlist/common"
)

// Walker scans the end-anchored descriptor table of a validated playlist and
// decodes one ClipDescriptor per record. The first malformed descriptor
// aborts the rest of the file; descriptors decoded before it remain valid.
type Walker struct {
	config *WalkerConfig
	logger logging.Logger
}

// walkContext holds the current walk state
type walkContext struct {
	index     int
	remaining uint8
}

// NewWalker creates a new descriptor walker with default configuration
func NewWalker() *Walker {
	return NewWalkerWithConfig(nil)
}

// NewWalkerWithConfig creates a new descriptor walker with custom configuration
func NewWalkerWithConfig(config *WalkerConfig) *Walker {
	if config == nil {
		config = DefaultConfig().Walker
	}
	return &Walker{
		config: config,
		logger: logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger
func (w *Walker) SetLogger(logger logging.Logger) {
	w.logger = logger
}

// Walk seeks to the descriptor table of a file of the given size and decodes
// count descriptors. The returned slice holds every descriptor decoded before
// the first failure, so callers keep partial results alongside the error.
func (w *Walker) Walk(sr *stickyReader, size int64, count uint8, path string) ([]ClipDescriptor, error) {
	start := tableStart(size, count)

	if count == 0 {
		// Nothing to walk. The seek target is still computed, but a tiny
		// file may place it out of range and the original tool treated
		// that as success.
		if start >= 0 && start <= size {
			_, _ = sr.Seek(start, io.SeekStart)
		}
		return nil, nil
	}

	if start < int64(len(FileSignature)) || start > size {
		return nil, common.NewPlaylistErrorWithFields(common.FormatTypeMPLS, path,
			common.ErrCodeTruncated, "descriptor table lies outside the file", nil,
			logging.Fields{
				"table_start":      start,
				"file_size":        size,
				"descriptor_count": count,
			})
	}

	if _, err := sr.Seek(start, io.SeekStart); err != nil {
		return nil, common.NewPlaylistError(common.FormatTypeMPLS, path,
			common.ErrCodeTruncated, "could not seek to descriptor table", err)
	}

	descriptors := make([]ClipDescriptor, 0, count)
	context := &walkContext{remaining: count}

	for context.remaining > 0 {
		context.remaining--

		desc, err := w.walkOne(sr, path, context)
		if err != nil {
			return descriptors, err
		}

		descriptors = append(descriptors, *desc)
		context.index++
	}

	w.logger.Debug("descriptor walk complete", logging.Fields{
		"path":        path,
		"descriptors": len(descriptors),
	})

	return descriptors, nil
}

// walkOne decodes the descriptor at the current walk position
func (w *Walker) walkOne(sr *stickyReader, path string, context *walkContext) (*ClipDescriptor, error) {
	if _, err := sr.Seek(descriptorLeadIn, io.SeekCurrent); err != nil {
		return nil, w.parseError(path, context, "could not parse contents", err)
	}

	var sig [len(descriptorSignature)]byte
	if _, err := sr.Read(sig[:]); err != nil {
		return nil, w.parseError(path, context, "could not parse contents", err)
	}
	if !matchDescriptorSignature(sig) {
		return nil, w.parseError(path, context,
			fmt.Sprintf("could not parse contents: descriptor signature mismatch % X", sig), nil)
	}

	var desc ClipDescriptor

	var num [2]byte
	if _, err := sr.Read(num[:]); err != nil {
		return nil, w.parseError(path, context, "could not parse time stamp", err)
	}
	desc.FileNumber = binary.BigEndian.Uint16(num[:])

	sep, err := sr.ReadByte()
	if err != nil {
		return nil, w.parseError(path, context, "could not parse time stamp", err)
	}
	if sep != recordSeparator {
		return nil, w.parseError(path, context,
			fmt.Sprintf("could not parse time stamp: bad separator %#02x", sep), nil)
	}

	// The byte the original consumed as a space is the century of the BCD
	// year, fixed at 0x20 for this format.
	century, err := sr.ReadByte()
	if err != nil {
		return nil, w.parseError(path, context, "could not parse time stamp", err)
	}
	if century != centuryByte {
		return nil, w.parseError(path, context,
			fmt.Sprintf("could not parse time stamp: bad century byte %#02x", century), nil)
	}

	var ts [6]byte
	if _, err := sr.Read(ts[:]); err != nil {
		return nil, w.parseError(path, context, "could not parse time stamp", err)
	}
	desc.Decade, desc.Month, desc.Day = ts[0], ts[1], ts[2]
	desc.Hour, desc.Minute, desc.Second = ts[3], ts[4], ts[5]

	if w.config.StrictMode {
		if err := w.verifyTrailer(sr, path, &desc, context); err != nil {
			return nil, err
		}
	}

	return &desc, nil
}

// verifyTrailer checks the marker and ASCII date copy that follow the BCD
// timestamp, then rewinds so the walk stays on its 66-byte stride.
func (w *Walker) verifyTrailer(sr *stickyReader, path string, desc *ClipDescriptor, context *walkContext) error {
	if !desc.timestampBCD() {
		return w.parseError(path, context, "time stamp byte is not packed BCD", nil)
	}

	var trailer [verifyTrailerSize]byte
	if _, err := sr.Read(trailer[:]); err != nil {
		return w.parseError(path, context, "could not read descriptor trailer", err)
	}

	copy(desc.Marker[:], trailer[:markerSize])
	desc.ASCIIDate = string(trailer[markerSize:])

	known := false
	for _, m := range descriptorMarkers {
		if desc.Marker == m {
			known = true
			break
		}
	}
	if !known {
		return w.parseError(path, context,
			fmt.Sprintf("unknown descriptor marker % X", desc.Marker[:]), nil)
	}

	want := fmt.Sprintf("%4d.%2d.%2d", 2000+bcd(desc.Decade), bcd(desc.Month), bcd(desc.Day))
	if desc.ASCIIDate != want {
		return w.parseError(path, context,
			fmt.Sprintf("descriptor date copy %q does not match time stamp %q", desc.ASCIIDate, want), nil)
	}

	if _, err := sr.Seek(-verifyTrailerSize, io.SeekCurrent); err != nil {
		return w.parseError(path, context, "could not read descriptor trailer", err)
	}

	return nil
}

func (w *Walker) parseError(path string, context *walkContext, message string, cause error) error {
	return common.NewPlaylistErrorWithFields(common.FormatTypeMPLS, path,
		common.ErrCodeParse, message, cause,
		logging.Fields{"descriptor_index": context.index})
}

// matchDescriptorSignature compares a candidate block against the fixed
// descriptor sub-signature
func matchDescriptorSignature(sig [len(descriptorSignature)]byte) bool {
	return sig == descriptorSignature
}
