package tautulli

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

type TautulliClient struct {
	Logger *log.Entry
	server *Server
}

func NewTautulliClient(s *Server, l *log.Entry) *TautulliClient {
	return &TautulliClient{
		Logger: l,
		server: s,
	}
}

// GetActivity fetches the current activity and extracts its sessions. Every
// failure, whether the request or the payload, is a *ConnectivityError.
func (c *TautulliClient) GetActivity(ctx context.Context) (*Activity, error) {
	logger := c.Logger.WithFields(log.Fields{"server": c.server.BaseURL, "cmd": CmdGetActivity})

	body, err := c.server.GetActivity(ctx)
	if err != nil {
		logger.WithError(err).Debug("Could not get activity")
		return nil, &ConnectivityError{Op: "request", Err: err}
	}
	logger.Debugf("Raw response: %s", body)

	activity, err := ParseActivity(body)
	if err != nil {
		logger.WithError(err).Debug("Response is not a usable activity payload")
		return nil, err
	}

	if activity.StreamCount != len(activity.Sessions) {
		logger.Warnf("stream_count is %d but %d sessions were returned", activity.StreamCount, len(activity.Sessions))
	}

	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		for i, s := range activity.Sessions {
			b, _ := json.Marshal(s)
			logger.WithField("index", i).Debugf("Session: %s", b)
		}
	}

	return activity, nil
}
