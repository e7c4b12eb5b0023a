package status

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column widths of the fixed-width part of a row.
const (
	UserWidth       = 12
	PlatformWidth   = 4
	ResolutionWidth = 5
	FlagsWidth      = 2
	MbpsWidth       = 4
	StatusWidth     = 2
	ProgressWidth   = 15
)

// BandwidthCeiling is the highest believable rate in Mbps. Anything above
// it is shown as BandwidthSentinel.
const (
	BandwidthCeiling  = 99.9
	BandwidthSentinel = 9999
)

var stateCodes = map[string]string{
	"playing":   "pl",
	"paused":    "pa",
	"buffering": "bu",
}

// DisplaySession is one rendered row, column by column.
type DisplaySession struct {
	User             string
	Platform         string
	VideoResolution  string
	StreamResolution string
	Flags            string
	Mbps             float64
	MbpsText         string
	Status           string
	Progress         string
	Title            string
}

// NewDisplaySession derives the display values of f. The title is kept whole
// unless titleWidth is positive.
func NewDisplaySession(f Fields, titleWidth int) DisplaySession {
	mbps := Mbps(f.BandwidthKbps)
	title := f.Title
	if titleWidth > 0 {
		title = Truncate(title, titleWidth)
	}

	return DisplaySession{
		User:             Truncate(f.User, UserWidth),
		Platform:         Truncate(f.Platform, PlatformWidth),
		VideoResolution:  Truncate(f.VideoResolution, ResolutionWidth),
		StreamResolution: Truncate(f.StreamResolution, ResolutionWidth),
		Flags:            TTFlag(f.Transcoded, f.Throttled),
		Mbps:             mbps,
		MbpsText:         FormatMbps(mbps),
		Status:           StatusCode(f.State),
		Progress:         FormatProgress(f.ViewOffsetMS, f.DurationMS),
		Title:            title,
	}
}

func Mbps(kbps int64) float64 {
	return float64(kbps) / 1000
}

// FormatMbps renders mbps right-aligned in MbpsWidth: two decimals below
// 10, one decimal up to BandwidthCeiling, the sentinel above it.
func FormatMbps(mbps float64) string {
	switch {
	case mbps > BandwidthCeiling:
		return fmt.Sprintf("%*.0f", MbpsWidth, float64(BandwidthSentinel))
	case mbps >= 10:
		return fmt.Sprintf("%*.1f", MbpsWidth, mbps)
	default:
		return fmt.Sprintf("%*.2f", MbpsWidth, mbps)
	}
}

// FormatDuration renders ms as H:MM:SS. Milliseconds are floored to whole
// seconds.
func FormatDuration(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func FormatProgress(elapsedMS, totalMS int64) string {
	return strings.TrimSpace(FormatDuration(elapsedMS)) + "/" + strings.TrimSpace(FormatDuration(totalMS))
}

// StatusCode maps a playback state to its two letter code. Unknown states
// show their first two characters, an empty state shows "--".
func StatusCode(state string) string {
	state = strings.ToLower(strings.TrimSpace(state))
	if code, ok := stateCodes[state]; ok {
		return code
	}
	if state == "" {
		return "--"
	}
	return Truncate(state, StatusWidth)
}

func TTFlag(transcoded, throttled int) string {
	return fmt.Sprintf("%d%d", transcoded, throttled)
}

// cells measures text in terminal cells. Ambiguous-width runes count as
// one cell whatever the locale, so the layout does not depend on LANG.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Truncate cuts s to at most n terminal cells. A wide rune that would
// straddle the limit is dropped.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return cells.Truncate(s, n, "")
}

// PadRight left-aligns s in n cells.
func PadRight(s string, n int) string {
	return cells.FillRight(s, n)
}

// PadLeft right-aligns s in n cells.
func PadLeft(s string, n int) string {
	return cells.FillLeft(s, n)
}
