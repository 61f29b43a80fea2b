package mpls

import "fmt"

// Synthetic playlist builders used across all test files. Layout mirrors the
// camcorder output: a header region carrying the file signature and the
// descriptor count byte, the end-anchored descriptor table, and the fixed
// trailer.

// TestHeaderSize is the size of the header region in built playlists. Any
// value past the count byte works; the descriptor table is anchored to the
// end of the file, not to the header.
const TestHeaderSize = 200

// TestClip describes one descriptor for BuildTestPlaylist
type TestClip struct {
	FileNumber uint16
	// Decade, month, day, hour, minute, second as packed BCD bytes
	Timestamp [6]byte
}

// NewTestClip builds a TestClip from decimal timestamp components
func NewTestClip(fileNumber uint16, year, month, day, hour, minute, second int) TestClip {
	return TestClip{
		FileNumber: fileNumber,
		Timestamp: [6]byte{
			toBCD(year - 2000), toBCD(month), toBCD(day),
			toBCD(hour), toBCD(minute), toBCD(second),
		},
	}
}

func toBCD(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}

// BuildTestPlaylist assembles a structurally valid playlist holding the given
// clips, including the strict-mode marker and ASCII date copy per descriptor.
func BuildTestPlaylist(clips ...TestClip) []byte {
	data := make([]byte, 0, TestHeaderSize+len(clips)*descriptorSize+trailerSize)

	header := make([]byte, TestHeaderSize)
	copy(header, FileSignature)
	header[descriptorCountOffset] = byte(len(clips))
	data = append(data, header...)

	for _, clip := range clips {
		data = append(data, buildTestDescriptor(clip)...)
	}

	data = append(data, make([]byte, trailerSize)...)
	return data
}

// BuildTestPlaylistWithCount is BuildTestPlaylist with the count byte forced
// to an arbitrary value, for truncation and zero-count tests.
func BuildTestPlaylistWithCount(count byte, clips ...TestClip) []byte {
	data := BuildTestPlaylist(clips...)
	data[descriptorCountOffset] = count
	return data
}

// TestDescriptorOffset returns the offset of the i-th descriptor record in a
// playlist built by BuildTestPlaylist.
func TestDescriptorOffset(i int) int {
	return TestHeaderSize + i*descriptorSize
}

// TestDescriptorSignatureOffset returns the offset of the i-th descriptor's
// 8-byte sub-signature.
func TestDescriptorSignatureOffset(i int) int {
	return TestDescriptorOffset(i) + tableSeekCorrection
}

// TestDescriptorMarkerOffset returns the offset of the i-th descriptor's
// 2-byte trailing marker.
func TestDescriptorMarkerOffset(i int) int {
	return TestDescriptorSignatureOffset(i) + len(descriptorSignature) + 2 + 1 + 1 + 6
}

func buildTestDescriptor(clip TestClip) []byte {
	desc := make([]byte, 0, descriptorSize)

	desc = append(desc, 0x00, 0x00) // record head padding
	desc = append(desc, descriptorSignature[:]...)
	desc = append(desc, byte(clip.FileNumber>>8), byte(clip.FileNumber))
	desc = append(desc, recordSeparator, centuryByte)
	desc = append(desc, clip.Timestamp[:]...)
	desc = append(desc, descriptorMarkers[0][:]...)
	desc = append(desc, fmt.Sprintf("%4d.%2d.%2d",
		2000+bcd(clip.Timestamp[0]), bcd(clip.Timestamp[1]), bcd(clip.Timestamp[2]))...)

	// pad to the fixed record size
	for len(desc) < descriptorSize {
		desc = append(desc, 0x00)
	}
	return desc
}
