// Package httpserver serves queue progress over HTTP for dashboards and
// scripts. It is read-only: handlers report the derived (queued,
// inProgress, total) triples from internal/watch and never mutate queue
// state.
//
// Routes:
//
//	GET /v1/healthz          - liveness
//	GET /v1/status           - status of every watched queue
//	GET /v1/status?name=n    - status of selected queues (repeatable)
package httpserver
