package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apod_fetcher/internal/domain"
)

func TestObserveSync_Success(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveSync(&domain.SyncStats{
		Kind:      domain.SyncKindRange,
		Fetched:   31,
		Stored:    31,
		Published: 30,
		Duration:  time.Second,
	}, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.syncs.WithLabelValues("range")))
	assert.Equal(t, 31.0, testutil.ToFloat64(c.photosFetched.WithLabelValues("range")))
	assert.Equal(t, 31.0, testutil.ToFloat64(c.photosStored.WithLabelValues("range")))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.published))
	assert.Greater(t, testutil.ToFloat64(c.lastSuccess.WithLabelValues("range")), 0.0)
	assert.Equal(t, 0, testutil.CollectAndCount(c.syncFailures))
}

func TestObserveSync_FailureReasons(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{
			name:   "remote",
			err:    fmt.Errorf("fetch photos: %w", &domain.RemoteFetchError{Op: "today", Status: 429, Err: errors.New("rate limited")}),
			reason: reasonRemote,
		},
		{
			name:   "store",
			err:    fmt.Errorf("upsert photos: %w", &domain.StoreWriteError{Op: "upsert", Err: errors.New("locked")}),
			reason: reasonStore,
		},
		{
			name:   "other",
			err:    errors.New("boom"),
			reason: reasonOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(prometheus.NewRegistry())

			c.ObserveSync(&domain.SyncStats{Kind: domain.SyncKindToday, Errors: 1}, tt.err)

			assert.Equal(t, 1.0, testutil.ToFloat64(c.syncFailures.WithLabelValues("today", tt.reason)))
			assert.Equal(t, 0, testutil.CollectAndCount(c.syncs))
		})
	}
}

func TestObserveFavoriteToggle(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveFavoriteToggle(true)
	c.ObserveFavoriteToggle(true)
	c.ObserveFavoriteToggle(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.favoriteToggle.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.favoriteToggle.WithLabelValues("false")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveFavoriteToggle(true)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	Handler(reg).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "apod_favorite_toggles_total")
}
