package common

import (
	"fmt"
	"strings"
)

// FormatClipName renders a 16-bit stream file number as the 5-digit clip
// filename it refers to (e.g. 300 -> "00300.MTS")
func FormatClipName(fileNumber uint16) string {
	return fmt.Sprintf("%05d.MTS", fileNumber)
}

// FormatBCDByte renders a raw timestamp byte as its two hex digits. For valid
// packed BCD this prints the two decimal digits the byte encodes; the original
// extractor printed timestamps this way and the rendering is preserved even
// for non-BCD bytes.
func FormatBCDByte(b byte) string {
	return fmt.Sprintf("%02X", b)
}

// FormatDate renders the decade/month/day bytes as "20YY/MM/DD"
func FormatDate(decade, month, day byte) string {
	return "20" + FormatBCDByte(decade) + "/" + FormatBCDByte(month) + "/" + FormatBCDByte(day)
}

// FormatTimeOfDay renders the hour/minute/second bytes as "HH:MM:SS"
func FormatTimeOfDay(hour, minute, second byte) string {
	return FormatBCDByte(hour) + ":" + FormatBCDByte(minute) + ":" + FormatBCDByte(second)
}

// IsBCD reports whether both nibbles of b are decimal digits
func IsBCD(b byte) bool {
	return b>>4 <= 9 && b&0x0F <= 9
}

// BCDToInt decodes a packed BCD byte to its two-digit decimal value.
// The result is meaningful only when IsBCD(b) holds.
func BCDToInt(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// SafeStringCopy creates a safe copy of a string, handling padded values
func SafeStringCopy(s string) string {
	return strings.TrimSpace(s)
}
