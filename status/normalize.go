// Package status turns extracted Tautulli sessions into the rows of the
// status table.
package status

import (
	"strings"
	"unicode"

	"github.com/frebib/tautulli-status/tautulli/api"
)

// Fields holds the typed values of one session. Anything missing from the
// payload has already been replaced by its zero default.
type Fields struct {
	User             string
	Platform         string
	VideoResolution  string
	StreamResolution string
	Transcoded       int
	Throttled        int
	BandwidthKbps    int64
	State            string
	ViewOffsetMS     int64
	DurationMS       int64
	Title            string
}

func Normalize(s api.Session) Fields {
	return Fields{
		User:             clean(s.User),
		Platform:         clean(s.Platform),
		VideoResolution:  clean(s.VideoFullResolution),
		StreamResolution: clean(s.StreamVideoFullResolution),
		Transcoded:       s.TranscodeHWFullPipeline.Flag(),
		Throttled:        s.Throttled.Flag(),
		BandwidthKbps:    nonNegative(s.Bandwidth.Int()),
		State:            clean(s.State),
		ViewOffsetMS:     nonNegative(s.ViewOffset.Int()),
		DurationMS:       nonNegative(s.Duration.Int()),
		Title:            clean(s.FullTitle),
	}
}

// clean replaces control characters with spaces so one session is always
// one line.
func clean(s api.FlexString) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s.String())
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
