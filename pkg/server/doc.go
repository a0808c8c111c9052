// Package server exposes the agent's own HTTP status endpoints.
//
// Endpoints:
//
//	GET /         name, version and route list
//	GET /health   200 when the exporter service has not failed, 503 otherwise
//	GET /ready    200 once the server accepts traffic
//	GET /status   installed, active and healthy state plus the last monitor result
//	GET /metrics  Prometheus metrics
//
// /status and /health go through request ID, panic recovery, rate limit,
// logging and metrics middleware. /ready and /metrics are served bare.
//
// Run starts the server next to any background jobs, such as the health
// monitor, in one errgroup and shuts everything down on SIGINT or SIGTERM.
package server
