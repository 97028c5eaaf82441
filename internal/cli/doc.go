// Package cli is responsible for parsing command-line arguments, merging
// them with environment variables and the config file, and handling
// process-level concerns like exit codes. It translates the merged settings
// into the application's internal configuration.
//
// Precedence, highest first: flag, GRIDPLAN_* environment variable,
// gridplan.yaml, built-in default.
package cli
