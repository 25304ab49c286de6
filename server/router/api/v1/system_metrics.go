package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Atharvayadav11/sales-tool-email-generator/server/internal/observability"
)

// MetricsOverviewResponse represents the overview response of system metrics
type MetricsOverviewResponse struct {
	TotalRequests int64                      `json:"total_requests"`
	ErrorCount    int64                      `json:"error_count"`
	SuccessRate   float64                    `json:"success_rate"`
	P50LatencyMs  int64                      `json:"p50_latency_ms"`
	P95LatencyMs  int64                      `json:"p95_latency_ms"`
	Endpoints     map[string]EndpointMetrics `json:"endpoints"`
}

// EndpointMetrics is the per-endpoint slice of the overview.
type EndpointMetrics struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	AvgLatencyMs int64 `json:"avg_latency_ms"`
}

// GetSystemMetrics returns the in-process request metrics overview.
// GET /api/v1/system/metrics
func (s *APIV1Service) GetSystemMetrics(c echo.Context) error {
	snap := observability.GlobalMetrics().Snapshot()

	resp := MetricsOverviewResponse{
		TotalRequests: snap.RequestTotal,
		ErrorCount:    snap.RequestFailed,
		P50LatencyMs:  observability.GlobalMetrics().PercentileDurationMs(50),
		P95LatencyMs:  observability.GlobalMetrics().PercentileDurationMs(95),
		Endpoints:     make(map[string]EndpointMetrics, len(snap.Endpoints)),
	}
	if snap.RequestTotal > 0 {
		resp.SuccessRate = float64(snap.RequestTotal-snap.RequestFailed) / float64(snap.RequestTotal)
	}
	for endpoint, em := range snap.Endpoints {
		resp.Endpoints[endpoint] = EndpointMetrics{
			Requests:     em.RequestCount,
			Errors:       em.ErrorCount,
			AvgLatencyMs: em.AverageDuration,
		}
	}

	return c.JSON(http.StatusOK, resp)
}
