// Package api implements the depdot HTTP API.
//
// # Endpoints
//
//	POST /api/v1/dot?name=N&verify=B   JSON graph in, DOT out
//	POST /api/v1/check?strict=B        JSON graph in, check report out
//	GET  /api/v1/atoms/{atom}?eapi=N   URL-escaped atom in, parsed atom out
//	GET  /healthz
//
// Graph bodies use the JSON format of package io. Results come from a
// shared [pipeline.Runner], so the server and the CLI hit the same cache.
//
// # Errors
//
// Errors are JSON objects {"code", "message", "request_id"}. INVALID_* and
// MALFORMED_ATOM map to 400, NOT_FOUND to 404, everything else to 500 with
// the detail withheld.
//
// # Request IDs
//
// Each response carries X-Request-ID: the client's value when supplied,
// else a fresh UUID.
package api
