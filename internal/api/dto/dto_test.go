package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/domain"
)

func TestTimeAcceptsDatesAndTimestamps(t *testing.T) {
	var req EventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"event_date":"2026-06-12"}`), &req))
	require.NotNil(t, req.EventDate)
	assert.Equal(t, time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC), req.EventDate.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"event_date":"2026-06-12T18:30:00+02:00"}`), &req))
	assert.Equal(t, time.Date(2026, 6, 12, 16, 30, 0, 0, time.UTC), *req.EventDate.Ptr())

	var empty EventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"event_date":null}`), &empty))
	assert.Nil(t, empty.EventDate.Ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"event_date":"12/06/2026"}`), &req))
}

func TestGrowthReportFormatsMonths(t *testing.T) {
	out := NewGrowthReport([]domain.GrowthPoint{
		{Month: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Users: 3},
	})
	require.Len(t, out, 1)
	assert.Equal(t, "2026-01", out[0].Month)
	assert.Equal(t, int64(3), out[0].Users)
}

func TestPackageResponseNeverReturnsNullFeatures(t *testing.T) {
	raw, err := json.Marshal(NewPackageResponse(&domain.VendorPackage{ID: "p1"}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"features":[]`)
}
