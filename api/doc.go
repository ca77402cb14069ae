// Package api exposes the employee operations over HTTP with gin.
//
// Routes live under /api/v1. Degraded results (the fallback values of
// the orchestrator) are mapped to client errors here: a zero record is a
// 404, a zero salary or an empty ranking is a 400 "Service down" reply.
// /healthz is a liveness probe and /readyz reports policy readiness.
package api
