package tautulli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frebib/tautulli-status/tautulli/api"
)

// Activity is the extracted result of a get_activity call. Sessions keep the
// order of the API's sessions array.
type Activity struct {
	StreamCount    int
	TotalBandwidth int64
	Sessions       []api.Session
}

// Idle reports the "no active sessions" outcome, a stream_count of zero.
// It is a successful extraction, not an error.
func (a *Activity) Idle() bool {
	return a.StreamCount == 0
}

// ParseActivity validates a raw get_activity body and extracts its sessions.
// A body without a stream_count is not usable and is reported as a
// *ConnectivityError, the same as a failed request.
func ParseActivity(body []byte) (*Activity, error) {
	var resp api.ActivityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ConnectivityError{Op: "decode", Err: err}
	}

	if r := strings.TrimSpace(resp.Result); r != "" && !strings.EqualFold(r, "success") {
		msg := resp.Message.String()
		if msg == "" {
			msg = r
		}
		return nil, &ConnectivityError{Op: "decode", Err: fmt.Errorf("%w: %s", ErrAPIFailure, msg)}
	}

	sc := resp.Data.StreamCount
	if sc == nil {
		return nil, &ConnectivityError{Op: "decode", Err: ErrMissingStreamCount}
	}
	if !sc.Valid || sc.Value < 0 {
		return nil, &ConnectivityError{Op: "decode", Err: ErrInvalidStreamCount}
	}

	activity := &Activity{
		StreamCount:    int(sc.Value),
		TotalBandwidth: resp.Data.TotalBandwidth.Int(),
	}
	if activity.StreamCount == 0 {
		return activity, nil
	}

	activity.Sessions = resp.Data.Sessions
	return activity, nil
}
