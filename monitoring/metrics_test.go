package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackOperation(t *testing.T) {
	before := testutil.ToFloat64(resourceOperations.WithLabelValues("tasks", "create", "success"))

	TrackOperation("tasks", "create", "success")
	TrackOperation("tasks", "create", "success")

	after := testutil.ToFloat64(resourceOperations.WithLabelValues("tasks", "create", "success"))
	assert.Equal(t, before+2, after)
}

func TestTrackCacheSize(t *testing.T) {
	TrackCacheSize("bookings", 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(cachedRecords.WithLabelValues("bookings")))
}

func TestTrackRequest_LabelsTransportErrors(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "error"))

	TrackRequest("GET", 0, 10*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "error")))

	before = testutil.ToFloat64(httpRequests.WithLabelValues("PUT", "204"))
	TrackRequest("PUT", 204, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("PUT", "204")))
}
