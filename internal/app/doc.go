// Package app wires the export service together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, an optional YAML file and the environment
//	2. Initialize logging and OpenTelemetry
//	3. Build the profile registry, export service and health service
//	4. Set up the chi router, middleware and handlers
//	5. Configure the HTTP server
//
// Run serves until SIGINT or SIGTERM and then shuts the server and the
// telemetry providers down within the configured shutdown timeout.
//
// All initialization errors are returned to the caller; the package never
// calls os.Exit.
package app
