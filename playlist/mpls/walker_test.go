package mpls

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dphoyes/phototimeshift/playlist/common"
)

func walkAll(t *testing.T, walker *Walker, data []byte) ([]ClipDescriptor, error) {
	t.Helper()
	sr := newStickyReader(bytes.NewReader(data))
	return walker.Walk(sr, int64(len(data)), data[descriptorCountOffset], "a.MPL")
}

func TestWalk(t *testing.T) {
	walker := NewWalker()

	t.Run("two descriptors in order", func(t *testing.T) {
		data := BuildTestPlaylist(
			NewTestClip(127, 2011, 6, 2, 23, 50, 51),
			NewTestClip(128, 2011, 6, 3, 0, 1, 2),
		)

		descs, err := walkAll(t, walker, data)

		require.NoError(t, err)
		require.Len(t, descs, 2)

		assert.Equal(t, uint16(127), descs[0].FileNumber)
		assert.Equal(t, byte(0x11), descs[0].Decade)
		assert.Equal(t, byte(0x06), descs[0].Month)
		assert.Equal(t, byte(0x02), descs[0].Day)
		assert.Equal(t, byte(0x23), descs[0].Hour)
		assert.Equal(t, byte(0x50), descs[0].Minute)
		assert.Equal(t, byte(0x51), descs[0].Second)

		assert.Equal(t, uint16(128), descs[1].FileNumber)
	})

	t.Run("file number round trip", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(300, 2011, 6, 2, 23, 50, 51))

		// 300 encodes as the two big-endian bytes 0x01 0x2C
		numOffset := TestDescriptorSignatureOffset(0) + len(descriptorSignature)
		assert.Equal(t, byte(0x01), data[numOffset])
		assert.Equal(t, byte(0x2C), data[numOffset+1])

		descs, err := walkAll(t, walker, data)

		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Equal(t, uint16(300), descs[0].FileNumber)
		assert.Equal(t, "00300.MTS", common.FormatClipName(descs[0].FileNumber))
	})

	t.Run("zero descriptors", func(t *testing.T) {
		data := BuildTestPlaylist()

		descs, err := walkAll(t, walker, data)

		require.NoError(t, err)
		assert.Empty(t, descs)
	})

	t.Run("corrupt second of three aborts before the third", func(t *testing.T) {
		data := BuildTestPlaylist(
			NewTestClip(1, 2011, 6, 2, 23, 50, 51),
			NewTestClip(2, 2011, 6, 3, 0, 1, 2),
			NewTestClip(3, 2011, 6, 4, 1, 2, 3),
		)
		data[TestDescriptorSignatureOffset(1)] ^= 0xFF

		descs, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
		assert.Equal(t, 1, perr.Fields["descriptor_index"])

		// The first descriptor stands, the third was never attempted
		require.Len(t, descs, 1)
		assert.Equal(t, uint16(1), descs[0].FileNumber)
	})

	t.Run("bad record separator", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(1, 2011, 6, 2, 23, 50, 51))
		sepOffset := TestDescriptorSignatureOffset(0) + len(descriptorSignature) + 2
		data[sepOffset] = 0x00

		descs, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
		assert.Empty(t, descs)
	})

	t.Run("bad century byte", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(1, 2011, 6, 2, 23, 50, 51))
		centuryOffset := TestDescriptorSignatureOffset(0) + len(descriptorSignature) + 3
		data[centuryOffset] = 0x19

		_, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
	})

	t.Run("count larger than the file holds", func(t *testing.T) {
		data := BuildTestPlaylistWithCount(250, NewTestClip(1, 2011, 6, 2, 23, 50, 51))

		descs, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeTruncated, perr.Code)
		assert.Empty(t, descs)
	})
}

func TestWalkStrictMode(t *testing.T) {
	walker := NewWalkerWithConfig(&WalkerConfig{StrictMode: true})

	t.Run("valid descriptors pass and carry verification fields", func(t *testing.T) {
		data := BuildTestPlaylist(
			NewTestClip(1, 2011, 6, 2, 23, 50, 51),
			NewTestClip(2, 2011, 12, 31, 23, 59, 59),
		)

		descs, err := walkAll(t, walker, data)

		require.NoError(t, err)
		require.Len(t, descs, 2)
		assert.Equal(t, [2]byte{0x90, 0x0A}, descs[0].Marker)
		assert.Equal(t, "2011. 6. 2", descs[0].ASCIIDate)
		assert.Equal(t, "2011.12.31", descs[1].ASCIIDate)
	})

	t.Run("unknown marker rejected", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(1, 2011, 6, 2, 23, 50, 51))
		data[TestDescriptorMarkerOffset(0)+1] = 0x0B

		_, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
	})

	t.Run("alternate marker accepted", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(1, 2011, 6, 2, 23, 50, 51))
		data[TestDescriptorMarkerOffset(0)+1] = 0x0C

		descs, err := walkAll(t, walker, data)

		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Equal(t, [2]byte{0x90, 0x0C}, descs[0].Marker)
	})

	t.Run("non-BCD timestamp rejected", func(t *testing.T) {
		clip := NewTestClip(1, 2011, 6, 2, 23, 50, 51)
		clip.Timestamp[5] = 0x5A
		data := BuildTestPlaylist(clip)

		_, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
	})

	t.Run("date copy mismatch rejected", func(t *testing.T) {
		data := BuildTestPlaylist(NewTestClip(1, 2011, 6, 2, 23, 50, 51))
		data[TestDescriptorMarkerOffset(0)+markerSize] = 'X'

		_, err := walkAll(t, walker, data)

		var perr *common.PlaylistError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, common.ErrCodeParse, perr.Code)
	})

	t.Run("non-BCD timestamp passes in default mode", func(t *testing.T) {
		clip := NewTestClip(1, 2011, 6, 2, 23, 50, 51)
		clip.Timestamp[5] = 0x5A
		data := BuildTestPlaylist(clip)

		descs, err := walkAll(t, NewWalker(), data)

		require.NoError(t, err)
		require.Len(t, descs, 1)
		assert.Equal(t, byte(0x5A), descs[0].Second)
	})
}

// TestLayoutConstants pins the empirical offsets against a synthetic file.
// Any change here is a format-compatibility break.
func TestLayoutConstants(t *testing.T) {
	assert.Equal(t, 65, descriptorCountOffset)
	assert.Equal(t, 50, trailerSize)
	assert.Equal(t, 66, descriptorSize)
	assert.Equal(t, 48, descriptorLeadIn)
	assert.Equal(t, 2, tableSeekCorrection)
	assert.Equal(t, [8]byte{0x01, 0x03, 0x05, 0x01, 0x00, 0x00, 0x00, 0x02}, descriptorSignature)

	data := BuildTestPlaylist(
		NewTestClip(1, 2011, 6, 2, 23, 50, 51),
		NewTestClip(2, 2011, 6, 3, 0, 1, 2),
	)
	size := int64(len(data))

	// size - 50 - 66*N - 48 + 2
	start := tableStart(size, 2)
	assert.Equal(t, size-50-66*2-48+2, start)

	// The first lead-in skip from the table start lands on the first
	// descriptor sub-signature.
	sig := data[start+descriptorLeadIn : start+descriptorLeadIn+8]
	assert.Equal(t, descriptorSignature[:], sig)
}

func TestDecodeTime(t *testing.T) {
	desc := ClipDescriptor{
		Decade: 0x11, Month: 0x06, Day: 0x02,
		Hour: 0x23, Minute: 0x50, Second: 0x51,
	}

	decoded := desc.decodeTime(nil)
	assert.Equal(t, "2011-06-02T23:50:51Z", decoded.Format("2006-01-02T15:04:05Z07:00"))

	desc.Second = 0x5A
	assert.True(t, desc.decodeTime(nil).IsZero())
}
