// Package document implements the JSON and YAML wire formats: the input
// document read by the `run` command and the HTTP API, and the output
// document the schedule is written as.
package document
