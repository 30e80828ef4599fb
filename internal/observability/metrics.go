package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesPacked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "frame",
			Name:      "packed_total",
			Help:      "Frames encoded for transmit.",
		},
		[]string{"link", "cmd"},
	)
	framesUnpacked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "frame",
			Name:      "unpacked_total",
			Help:      "Frames decoded and checksum-validated.",
		},
		[]string{"link", "cmd"},
	)
	resyncBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "frame",
			Name:      "resync_bytes_discarded_total",
			Help:      "Noise bytes discarded while resynchronizing.",
		},
		[]string{"link"},
	)
	checksumFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "frame",
			Name:      "checksum_failures_total",
			Help:      "Frames dropped on CRC mismatch.",
		},
		[]string{"link"},
	)
	dispatchUnknown = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "link",
			Name:      "dispatch_unknown_total",
			Help:      "Validated frames with no registered handler.",
		},
		[]string{"link", "cmd"},
	)
	dispatchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "link",
			Name:      "dispatch_errors_total",
			Help:      "Handler or payload decode failures.",
		},
		[]string{"link", "cmd"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "uartlink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests to the monitor.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "uartlink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Monitor HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			framesPacked, framesUnpacked, resyncBytes, checksumFailures,
			dispatchUnknown, dispatchErrors, httpRequests, httpDuration,
		)
	})
}

func cmdLabel(cmdID uint16) string {
	return "0x" + strconv.FormatUint(uint64(cmdID), 16)
}

func RecordFramePacked(link string, cmdID uint16) {
	RegisterMetrics()
	framesPacked.WithLabelValues(link, cmdLabel(cmdID)).Inc()
}

func RecordFrameUnpacked(link string, cmdID uint16) {
	RegisterMetrics()
	framesUnpacked.WithLabelValues(link, cmdLabel(cmdID)).Inc()
}

func RecordResyncDiscard(link string, count int) {
	RegisterMetrics()
	resyncBytes.WithLabelValues(link).Add(float64(count))
}

func RecordChecksumFailure(link string) {
	RegisterMetrics()
	checksumFailures.WithLabelValues(link).Inc()
}

func RecordDispatchUnknown(link string, cmdID uint16) {
	RegisterMetrics()
	dispatchUnknown.WithLabelValues(link, cmdLabel(cmdID)).Inc()
}

func RecordDispatchError(link string, cmdID uint16) {
	RegisterMetrics()
	dispatchErrors.WithLabelValues(link, cmdLabel(cmdID)).Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
