// Package server exposes the scheduling pipeline over HTTP.
//
//	GET  /health             liveness and version
//	GET  /metrics            Prometheus exposition
//	POST /v1/schedules       schedule an input document (JSON or YAML body)
//	GET  /v1/schedules       list stored runs, newest first
//	GET  /v1/schedules/:id   fetch one stored run with its schedule
//
// The /v1/schedules read endpoints answer 501 when no store is configured.
package server
