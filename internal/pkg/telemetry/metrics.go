package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Planning
	MetricPlanLatency   = "zoning.plan_latency"
	MetricPlanFreshness = "zoning.plan_age_seconds"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricZonesPlanned       = "business.zones_planned"
	MetricCheckpointsCreated = "business.checkpoints_created"
)
