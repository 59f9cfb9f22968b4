// Package config provides configuration management for the preprocess
// command. Configuration is resolved from three sources, later ones winning:
//
//	1. Default values (Default)
//	2. A YAML file named by PREP_CONFIG_FILE, or preprocess.yaml /
//	   configs/preprocess.yaml in the working directory
//	3. Environment variables with the PREP_ prefix
//
// # Environment Variables
//
//	PREP_LOGGING_LEVEL=debug
//	PREP_LOGGING_OUTPUT=file            # none | file | stderr
//	PREP_LOGGING_FILE_PATH=/var/log/preprocess.log
//	PREP_OUTPUT_DIR=/srv/derived
//	PREP_OUTPUT_BOM=true
//	PREP_OUTPUT_ATOMIC=false
//	PREP_LOADER_MAX_FILE_SIZE=104857600
//	PREP_LOADER_NA_VALUES=-,?
//	PREP_TELEMETRY_TRACE_FILE=/tmp/preprocess-trace.json
//	PREP_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/preprocess.prom
//	PREP_EXIT_STRICT_EXIT_CODES=true
//
// Standard output carries the result envelope and standard error the error
// envelope, so logs never go to stdout.
//
// The package also holds the operation names, method names, output suffixes
// and thresholds shared by the preprocessing packages.
package config
