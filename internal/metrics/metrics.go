// Package metrics exposes sync and favorite counters to Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"apod_fetcher/internal/domain"
)

const namespace = "apod"

// failure reasons
const (
	reasonRemote = "remote"
	reasonStore  = "store"
	reasonOther  = "other"
)

type Collector struct {
	syncs          *prometheus.CounterVec
	syncFailures   *prometheus.CounterVec
	photosFetched  *prometheus.CounterVec
	photosStored   *prometheus.CounterVec
	published      prometheus.Counter
	syncDuration   *prometheus.HistogramVec
	lastSuccess    *prometheus.GaugeVec
	favoriteToggle *prometheus.CounterVec
}

// NewCollector creates the collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Completed sync passes by kind.",
		}, []string{"kind"}),
		syncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_failures_total",
			Help:      "Failed sync passes by kind and reason.",
		}, []string{"kind", "reason"}),
		photosFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photos_fetched_total",
			Help:      "Records returned by the APOD API.",
		}, []string{"kind"}),
		photosStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photos_stored_total",
			Help:      "Records written to the cache.",
		}, []string{"kind"}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photos_published_total",
			Help:      "Photo events published to the message broker.",
		}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of sync passes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_sync_timestamp_seconds",
			Help:      "Unix time of the last successful sync pass.",
		}, []string{"kind"}),
		favoriteToggle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "Favorite flag changes by resulting state.",
		}, []string{"favorite"}),
	}

	reg.MustRegister(
		c.syncs,
		c.syncFailures,
		c.photosFetched,
		c.photosStored,
		c.published,
		c.syncDuration,
		c.lastSuccess,
		c.favoriteToggle,
	)

	return c
}

// ObserveSync records the outcome of one sync pass.
func (c *Collector) ObserveSync(stats *domain.SyncStats, err error) {
	kind := string(stats.Kind)

	c.syncDuration.WithLabelValues(kind).Observe(stats.Duration.Seconds())

	if err != nil {
		c.syncFailures.WithLabelValues(kind, reason(err)).Inc()
		return
	}

	c.syncs.WithLabelValues(kind).Inc()
	c.photosFetched.WithLabelValues(kind).Add(float64(stats.Fetched))
	c.photosStored.WithLabelValues(kind).Add(float64(stats.Stored))
	c.published.Add(float64(stats.Published))
	c.lastSuccess.WithLabelValues(kind).SetToCurrentTime()
}

func (c *Collector) ObserveFavoriteToggle(favorite bool) {
	label := "false"
	if favorite {
		label = "true"
	}
	c.favoriteToggle.WithLabelValues(label).Inc()
}

func reason(err error) string {
	var fetchErr *domain.RemoteFetchError
	var writeErr *domain.StoreWriteError
	switch {
	case errors.As(err, &fetchErr):
		return reasonRemote
	case errors.As(err, &writeErr):
		return reasonStore
	default:
		return reasonOther
	}
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
