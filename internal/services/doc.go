// Package services implements the business logic layer between the HTTP and
// CLI surfaces and the export engine.
//
// ExportService resolves a named profile from a Registry, decodes and
// validates the request's records, places the destination under the
// configured output directory and runs the engine. Exports to the same
// destination are serialized; the total number of concurrent exports is
// bounded by a semaphore. ExportBatch fans a set of requests with distinct
// destinations out over an errgroup. ListExports reports the documents
// already present in the output directory.
//
// HealthService reports liveness and readiness for the server.
package services
