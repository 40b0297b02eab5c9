// Package http implements the HTTP handlers of the export service.
// Handlers stay thin: they decode the request with go-chi/render, call the
// service layer and translate failures to RFC 7807 problem details through
// the shared errors.ErrorHandler.
//
// # Endpoints
//
//	POST /api/v1/exports          write one document
//	POST /api/v1/exports/batch    write several documents concurrently
//	POST /api/v1/exports/preview  project records without writing
//	GET  /api/v1/profiles         list registered profiles
//	GET  /api/v1/profiles/{name}  describe one profile
//	GET  /api/health              liveness
//	GET  /api/health/ready        readiness
//
// Export failures map to status codes by kind: contract violations answer
// 422, an unavailable spreadsheet session 503, range write failures 400 and
// persistence failures 500.
package http
