package mpls

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dphoyes/phototimeshift/logging"
)

// TimezoneSidecarSuffix is appended to a playlist path to name its optional
// timezone sidecar file.
const TimezoneSidecarSuffix = ".timezone.json"

// TimezoneTable maps a clip filename ("00127.MTS") to its UTC offset in
// seconds. The playlist format itself has no timezone field; the sidecar is
// how a correction pass records one per clip.
type TimezoneTable map[string]float64

// SidecarPath returns the timezone sidecar path for a playlist
func SidecarPath(playlistPath string) string {
	return playlistPath + TimezoneSidecarSuffix
}

// LoadTimezoneTable reads the timezone sidecar for a playlist. A missing
// sidecar is normal and yields a nil table; a malformed one is logged and
// ignored so it never invalidates the playlist itself.
func LoadTimezoneTable(playlistPath string) TimezoneTable {
	data, err := os.ReadFile(SidecarPath(playlistPath))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("could not read timezone sidecar", logging.Fields{
				"path": SidecarPath(playlistPath),
			})
		}
		return nil
	}

	var table TimezoneTable
	if err := json.Unmarshal(data, &table); err != nil {
		logging.Error(err, "malformed timezone sidecar ignored", logging.Fields{
			"path": SidecarPath(playlistPath),
		})
		return nil
	}

	return table
}

// Location returns the fixed-offset location recorded for a clip, or nil when
// the table has no entry for it.
func (t TimezoneTable) Location(clip string) *time.Location {
	offset, ok := t[clip]
	if !ok {
		return nil
	}
	return time.FixedZone("", int(offset))
}
