package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordFramePacked("uart3", 0x0301)
	RecordFrameUnpacked("uart3", 0x0001)
	RecordResyncDiscard("uart3", 17)
	RecordChecksumFailure("uart3")
	RecordDispatchUnknown("uart3", 0xBEEF)
	RecordDispatchError("uart3", 0x0206)
	RecordHTTPRequest("linkmon", "GET", "/health", 200, 12*time.Millisecond)
}
