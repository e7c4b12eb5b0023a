package tautulli

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/frebib/tautulli-status/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, srv *httptest.Server) config.TautulliConfig {
	t.Helper()
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	return config.TautulliConfig{
		Host:    host,
		Port:    p,
		APIKey:  "secret-key",
		Timeout: time.Second,
	}
}

func testLogger(buf *bytes.Buffer) *log.Entry {
	l := log.New()
	l.SetOutput(buf)
	l.SetLevel(log.DebugLevel)
	return log.NewEntry(l)
}

func jsonHandler(t *testing.T, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, CmdGetActivity, r.URL.Query().Get("cmd"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "tautulli-status/")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}

func TestGetActivity(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, twoSessions))
	defer srv.Close()

	var logs bytes.Buffer
	client := NewTautulliClient(NewServer(testConfig(t, srv)), testLogger(&logs))

	a, err := client.GetActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, a.Sessions, 2)
	assert.Equal(t, "Dune", a.Sessions[0].FullTitle.String())

	assert.Contains(t, logs.String(), "Raw response")
	assert.Contains(t, logs.String(), "Arrival")
}

func TestGetActivityBasePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tautulli/api/v2", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"result":"success","data":{"stream_count":"0"}}}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv)
	cfg.BasePath = "tautulli"
	client := NewTautulliClient(NewServer(cfg), testLogger(&bytes.Buffer{}))

	a, err := client.GetActivity(context.Background())
	require.NoError(t, err)
	assert.True(t, a.Idle())
}

func TestGetActivityConnectivityErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte("<html></html>"))
			},
		},
		{
			name: "missing stream count",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"response":{"result":"success","data":{}}}`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			cfg := testConfig(t, srv)
			cfg.Timeout = 200 * time.Millisecond
			client := NewTautulliClient(NewServer(cfg), testLogger(&bytes.Buffer{}))

			_, err := client.GetActivity(context.Background())
			require.Error(t, err)
			assert.True(t, IsConnectivityError(err))
			assert.NotContains(t, err.Error(), "secret-key")
		})
	}
}

func TestGetActivityUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := testConfig(t, srv)
	srv.Close()

	client := NewTautulliClient(NewServer(cfg), testLogger(&bytes.Buffer{}))
	_, err := client.GetActivity(context.Background())

	var ce *ConnectivityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "request", ce.Op)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestCommandURL(t *testing.T) {
	s := NewServer(config.TautulliConfig{Host: "localhost", Port: 8181, APIKey: "k y", Timeout: time.Second})
	assert.Equal(t, "http://localhost:8181/api/v2?apikey=k+y&cmd=get_activity", s.CommandURL(CmdGetActivity, nil))
}
