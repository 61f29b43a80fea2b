package mpls

import "time"

// FileSignature is the 8-byte ASCII magic at the start of every recorder
// playlist this package accepts.
const FileSignature = "MPLS0100"

// Layout constants. Every offset below was reverse-engineered from playlists
// written by AVCHD camcorder firmware; none of them comes from a published
// specification. They are a compatibility contract: changing one is a format
// break, not a refactor.
const (
	// descriptorCountOffset is the absolute offset of the descriptor count
	// byte (the 66th byte of the file).
	descriptorCountOffset = 65

	// trailerSize is the fixed trailer at the end of the file, after the
	// last descriptor.
	trailerSize = 50

	// descriptorSize is the full size of one clip descriptor record.
	descriptorSize = 66

	// descriptorLeadIn is the padding skipped at the top of each walk
	// iteration before the descriptor sub-signature.
	descriptorLeadIn = 48

	// tableSeekCorrection is the empirical +2 adjustment applied to the
	// end-anchored table seek.
	tableSeekCorrection = 2
)

// Descriptor field separators. The byte after the record separator is the
// ASCII-space-valued century byte: the original C extractor consumed it as
// whitespace, but it is the high byte of the BCD year (0x20xx).
const (
	recordSeparator = 0x1E
	centuryByte     = 0x20
)

// descriptorSignature marks the start of the timestamp block inside each
// descriptor.
var descriptorSignature = [8]byte{0x01, 0x03, 0x05, 0x01, 0x00, 0x00, 0x00, 0x02}

// Trailing per-descriptor verification data, only read in strict mode.
const (
	markerSize    = 2
	asciiDateSize = 10
	// verifyTrailerSize is the bytes after the timestamp consumed by a
	// strict-mode verification pass.
	verifyTrailerSize = markerSize + asciiDateSize
)

// descriptorMarkers are the two byte pairs observed between the BCD timestamp
// and the ASCII date copy.
var descriptorMarkers = [][markerSize]byte{
	{0x90, 0x0A},
	{0x90, 0x0C},
}

// Playlist is the decoded view of one playlist file, restricted to the
// fields this package reads.
type Playlist struct {
	Path            string
	Size            int64
	DescriptorCount uint8
	Descriptors     []ClipDescriptor
}

// ClipDescriptor is the consumed portion of one 66-byte descriptor record.
type ClipDescriptor struct {
	FileNumber uint16

	// Raw packed-BCD timestamp bytes in wire order
	Decade byte
	Month  byte
	Day    byte
	Hour   byte
	Minute byte
	Second byte

	// Strict-mode verification fields; zero-valued in default mode
	Marker    [markerSize]byte
	ASCIIDate string
}

// timestampBCD reports whether every timestamp byte is valid packed BCD
func (d *ClipDescriptor) timestampBCD() bool {
	for _, b := range [...]byte{d.Decade, d.Month, d.Day, d.Hour, d.Minute, d.Second} {
		if b>>4 > 9 || b&0x0F > 9 {
			return false
		}
	}
	return true
}

// decodeTime decodes the BCD timestamp into a wall-clock time in loc.
// Returns the zero time when a byte is not valid BCD.
func (d *ClipDescriptor) decodeTime(loc *time.Location) time.Time {
	if !d.timestampBCD() {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(
		2000+bcd(d.Decade), time.Month(bcd(d.Month)), bcd(d.Day),
		bcd(d.Hour), bcd(d.Minute), bcd(d.Second), 0, loc,
	)
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// tableStart computes the absolute offset of the descriptor table walk origin
// for a file of the given size holding count descriptors.
func tableStart(size int64, count uint8) int64 {
	return size - trailerSize - descriptorSize*int64(count) - descriptorLeadIn + tableSeekCorrection
}
