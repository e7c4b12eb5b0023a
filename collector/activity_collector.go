package collector

import (
	"strconv"

	"github.com/frebib/tautulli-status/status"
	"github.com/frebib/tautulli-status/tautulli"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var sessionLabels = []string{"session_key", "user", "platform", "state", "transcode"}

// ActivityCollector exposes a single, already fetched activity snapshot.
// Collect never calls Tautulli.
type ActivityCollector struct {
	Logger   *log.Entry
	activity *tautulli.Activity

	activeSessionCount *prometheus.GaugeVec
	totalBandwidth     *prometheus.GaugeVec
	sessionBandwidth   *prometheus.GaugeVec
	sessionProgress    *prometheus.GaugeVec
}

func NewActivityCollector(a *tautulli.Activity, l *log.Entry) *ActivityCollector {
	return &ActivityCollector{
		Logger:   l,
		activity: a,

		activeSessionCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tautulli",
				Subsystem: "sessions",
				Name:      "active_count",
				Help:      "Number of active playback sessions",
			},
			[]string{},
		),
		totalBandwidth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tautulli",
				Subsystem: "sessions",
				Name:      "bandwidth_kbps_total",
				Help:      "Summed bandwidth of all active sessions in kbps",
			},
			[]string{},
		),
		sessionBandwidth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tautulli",
				Subsystem: "session",
				Name:      "bandwidth_kbps",
				Help:      "Bandwidth of an active session in kbps",
			},
			sessionLabels,
		),
		sessionProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tautulli",
				Subsystem: "session",
				Name:      "progress_ratio",
				Help:      "Elapsed fraction of the item being played (0-1)",
			},
			sessionLabels,
		),
	}
}

func (c *ActivityCollector) Describe(ch chan<- *prometheus.Desc) {
	c.activeSessionCount.Describe(ch)
	c.totalBandwidth.Describe(ch)
	c.sessionBandwidth.Describe(ch)
	c.sessionProgress.Describe(ch)
}

func (c *ActivityCollector) Collect(ch chan<- prometheus.Metric) {
	c.sessionBandwidth.Reset()
	c.sessionProgress.Reset()

	var total int64
	for i, s := range c.activity.Sessions {
		f := status.Normalize(s)
		total += f.BandwidthKbps

		key := s.SessionKey.String()
		if key == "" {
			key = strconv.Itoa(i)
		}
		labels := []string{key, f.User, f.Platform, f.State, strconv.Itoa(f.Transcoded)}

		c.sessionBandwidth.WithLabelValues(labels...).Set(float64(f.BandwidthKbps))
		if f.DurationMS > 0 {
			c.sessionProgress.WithLabelValues(labels...).Set(float64(f.ViewOffsetMS) / float64(f.DurationMS))
		}
	}

	// Tautulli's own total also counts sessions it could not itemise
	if c.activity.TotalBandwidth > total {
		total = c.activity.TotalBandwidth
	}

	c.Logger.Tracef("Collected %d sessions, %d kbps", len(c.activity.Sessions), total)
	c.activeSessionCount.WithLabelValues().Set(float64(c.activity.StreamCount))
	c.totalBandwidth.WithLabelValues().Set(float64(total))

	c.activeSessionCount.Collect(ch)
	c.totalBandwidth.Collect(ch)
	c.sessionBandwidth.Collect(ch)
	c.sessionProgress.Collect(ch)
}

// WriteTextfile renders the snapshot in the node_exporter textfile format.
func WriteTextfile(path string, a *tautulli.Activity, l *log.Entry) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewActivityCollector(a, l)); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
