// Package config provides configuration loading for sheetexport.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//	1. Default() values
//	2. A YAML file (SHEETEXPORT_CONFIG, sheetexport.yaml or configs/sheetexport.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern SHEETEXPORT_<SECTION>_<KEY>:
//
//	SHEETEXPORT_SERVER_PORT=8080
//	SHEETEXPORT_EXPORT_OUTPUT_DIR=/var/lib/sheetexport
//	SHEETEXPORT_EXPORT_ATOMIC_WRITE=true
//	SHEETEXPORT_LOGGING_LEVEL=debug
//
// # Path Management
//
// Paths resolves relative export destinations under the output directory and
// refuses destinations that would escape it:
//
//	paths, _ := config.NewPaths(cfg.Export.OutputDir)
//	full, err := paths.ResolveDestination("hooks/2024-01.xlsx")
package config
