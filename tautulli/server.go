package tautulli

import (
	"context"
	"crypto/tls"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/frebib/tautulli-status/config"
	"github.com/frebib/tautulli-status/version"
)

type Server struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
	headers    map[string]string
}

const APIURI = "%s/api/v2"

const CmdGetActivity = "get_activity"

var DefaultHeaders = map[string]string{
	"User-Agent": fmt.Sprintf("tautulli-status/%s", version.Version),
	"Accept":     "application/json",
}

func NewServer(c config.TautulliConfig) *Server {
	return &Server{
		BaseURL: c.BaseURL(),
		apiKey:  c.APIKey,
		headers: maps.Clone(DefaultHeaders),
		httpClient: &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: c.Insecure},
			},
		},
	}
}

// CommandURL builds the API v2 url for cmd. The api key travels as a query
// parameter, which is the only authentication Tautulli accepts here.
func (s *Server) CommandURL(cmd string, params url.Values) string {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("apikey", s.apiKey)
	q.Set("cmd", cmd)
	return fmt.Sprintf(APIURI, s.BaseURL) + "?" + q.Encode()
}

// Command runs a single API v2 command and returns the raw response body.
func (s *Server) Command(ctx context.Context, cmd string, params url.Values) ([]byte, error) {
	return s.get(ctx, s.CommandURL(cmd, params))
}

func (s *Server) GetActivity(ctx context.Context) ([]byte, error) {
	return s.Command(ctx, CmdGetActivity, nil)
}

func (s *Server) get(ctx context.Context, url string) ([]byte, error) {
	_, body, err := sendRequest(ctx, http.MethodGet, url, s.headers, s.httpClient)
	return body, err
}

// redact hides the api key so urls can be logged and put into errors.
func redact(u *url.URL) string {
	c := *u
	q := c.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
		c.RawQuery = q.Encode()
	}
	return c.String()
}
