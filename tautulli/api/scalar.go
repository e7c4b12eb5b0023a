package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt decodes the integer-like values Tautulli emits: JSON numbers,
// numeric strings, booleans and null. It never fails; a value that cannot be
// read as a number decodes as 0 with Valid unset.
type FlexInt struct {
	Value int64
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}

	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case bytes.Equal(b, []byte("true")):
		*f = FlexInt{Value: 1, Valid: true}
		return nil
	case bytes.Equal(b, []byte("false")):
		*f = FlexInt{Value: 0, Valid: true}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		f.parse(unquote(s))
		return nil
	default:
		f.parse(string(b))
		return nil
	}
}

func (f *FlexInt) parse(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt{Value: n, Valid: true}
		return
	}
	// float64(math.MaxInt64) rounds up to 2^63, which no int64 holds
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= math.MinInt64 && v < math.MaxInt64 {
		*f = FlexInt{Value: int64(v), Valid: true}
	}
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, f.Value, 10), nil
}

// Int returns the value, or 0 when it was absent or unreadable.
func (f FlexInt) Int() int64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// Flag collapses the value to 0 or 1.
func (f FlexInt) Flag() int {
	if f.Int() != 0 {
		return 1
	}
	return 0
}

// FlexString decodes a string field, tolerating null and scalar numbers.
// Stray surrounding quotes are stripped from the decoded text.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	*f = ""

	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*f = FlexString(unquote(s))
	case b[0] == '{', b[0] == '[':
		// objects and arrays have no sensible text form
	default:
		*f = FlexString(b)
	}
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
