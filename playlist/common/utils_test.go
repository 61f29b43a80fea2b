package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClipName(t *testing.T) {
	assert.Equal(t, "00000.MTS", FormatClipName(0))
	assert.Equal(t, "00300.MTS", FormatClipName(300))
	assert.Equal(t, "00127.MTS", FormatClipName(127))
	assert.Equal(t, "65535.MTS", FormatClipName(65535))
}

func TestFormatBCDByte(t *testing.T) {
	assert.Equal(t, "00", FormatBCDByte(0x00))
	assert.Equal(t, "11", FormatBCDByte(0x11))
	assert.Equal(t, "59", FormatBCDByte(0x59))

	// Non-BCD bytes keep the raw hex rendering of the original extractor
	assert.Equal(t, "1F", FormatBCDByte(0x1F))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2011/06/02", FormatDate(0x11, 0x06, 0x02))
	assert.Equal(t, "2099/12/31", FormatDate(0x99, 0x12, 0x31))
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "23:50:51", FormatTimeOfDay(0x23, 0x50, 0x51))
	assert.Equal(t, "00:00:00", FormatTimeOfDay(0, 0, 0))
}

func TestIsBCD(t *testing.T) {
	assert.True(t, IsBCD(0x00))
	assert.True(t, IsBCD(0x59))
	assert.True(t, IsBCD(0x99))
	assert.False(t, IsBCD(0x0A))
	assert.False(t, IsBCD(0xA0))
	assert.False(t, IsBCD(0xFF))
}

func TestBCDToInt(t *testing.T) {
	assert.Equal(t, 0, BCDToInt(0x00))
	assert.Equal(t, 11, BCDToInt(0x11))
	assert.Equal(t, 59, BCDToInt(0x59))
	assert.Equal(t, 23, BCDToInt(0x23))
}

func TestSafeStringCopy(t *testing.T) {
	assert.Equal(t, "2011. 6. 2", SafeStringCopy("  2011. 6. 2  "))
	assert.Equal(t, "", SafeStringCopy("   "))
}

func TestClipStampString(t *testing.T) {
	stamp := ClipStamp{
		Clip: "00300.MTS",
		Date: "2011/06/02",
		Time: "23:50:51",
	}
	assert.Equal(t, "00300.MTS  2011/06/02  23:50:51", stamp.String())
}
