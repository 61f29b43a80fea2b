package mpls

import (
	"time"

	"github.com/dphoyes/phototimeshift/playlist/common"
)

// StampExtractor turns decoded descriptors into clip stamp records. The hex
// renderings come straight from the raw bytes; the decoded wall-clock time is
// filled in only when the timestamp is valid packed BCD, in the clip's
// sidecar timezone when one is known.
type StampExtractor struct {
	config *TimezoneConfig
}

// NewStampExtractor creates a stamp extractor with default configuration
func NewStampExtractor() *StampExtractor {
	return NewStampExtractorWithConfig(nil)
}

// NewStampExtractorWithConfig creates a stamp extractor with custom configuration
func NewStampExtractorWithConfig(config *TimezoneConfig) *StampExtractor {
	if config == nil {
		config = DefaultConfig().Timezone
	}
	return &StampExtractor{config: config}
}

// ExtractStamps produces one ClipStamp per descriptor of the playlist
func (e *StampExtractor) ExtractStamps(playlist *Playlist, tz TimezoneTable) []common.ClipStamp {
	stamps := make([]common.ClipStamp, 0, len(playlist.Descriptors))

	for i := range playlist.Descriptors {
		desc := &playlist.Descriptors[i]
		clip := common.FormatClipName(desc.FileNumber)

		var loc *time.Location
		if e.config.EnableSidecar {
			loc = tz.Location(clip)
		}

		stamps = append(stamps, common.ClipStamp{
			Clip:       clip,
			FileNumber: desc.FileNumber,
			Date:       common.FormatDate(desc.Decade, desc.Month, desc.Day),
			Time:       common.FormatTimeOfDay(desc.Hour, desc.Minute, desc.Second),
			Recorded:   desc.decodeTime(loc),
			Playlist:   playlist.Path,
		})
	}

	return stamps
}
