package collector

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/frebib/tautulli-status/tautulli"
	"github.com/frebib/tautulli-status/tautulli/api"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testActivity(t *testing.T) *tautulli.Activity {
	t.Helper()
	var sessions []api.Session
	require.NoError(t, json.Unmarshal([]byte(`[
		{"session_key":"12","user":"Mike","platform":"Chrome","state":"playing","transcode_hw_full_pipeline":1,"bandwidth":6410,"view_offset":1000,"duration":4000},
		{"user":"Sarah","platform":"iOS","state":"paused","media_type":"track"}
	]`), &sessions))

	return &tautulli.Activity{StreamCount: 2, Sessions: sessions}
}

func discardLogger() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

func TestActivityCollectorGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewActivityCollector(testActivity(t), discardLogger())))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]float64{}
	series := map[string]int{}
	for _, mf := range families {
		series[mf.GetName()] = len(mf.GetMetric())
		byName[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
	}

	assert.Equal(t, 2.0, byName["tautulli_sessions_active_count"])
	assert.Equal(t, 6410.0, byName["tautulli_sessions_bandwidth_kbps_total"])
	assert.Equal(t, 2, series["tautulli_session_bandwidth_kbps"])
	// the track has no duration, so no progress series
	assert.Equal(t, 1, series["tautulli_session_progress_ratio"])
	assert.Equal(t, 0.25, byName["tautulli_session_progress_ratio"])
}

func TestActivityCollectorPrefersReportedTotal(t *testing.T) {
	a := testActivity(t)
	a.TotalBandwidth = 20000

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewActivityCollector(a, discardLogger())))

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "tautulli_sessions_bandwidth_kbps_total" {
			assert.Equal(t, 20000.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tautulli.prom")
	require.NoError(t, WriteTextfile(path, testActivity(t), discardLogger()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)

	assert.Contains(t, out, "# TYPE tautulli_sessions_active_count gauge")
	assert.Contains(t, out, "tautulli_sessions_active_count 2")
	assert.Contains(t, out, `session_key="12"`)
	assert.Contains(t, out, `session_key="1"`)
	assert.Contains(t, out, `user="Sarah"`)
}

func TestActivityCollectorCountsReportedStreams(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewActivityCollector(&tautulli.Activity{StreamCount: 3}, discardLogger())))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 2)
	for _, mf := range families {
		if mf.GetName() == "tautulli_sessions_active_count" {
			assert.Equal(t, 3.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
}

func TestWriteTextfileIdle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tautulli.prom")
	require.NoError(t, WriteTextfile(path, &tautulli.Activity{}, discardLogger()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "tautulli_sessions_active_count 0")
}
