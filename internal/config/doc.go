// Package config defines the format-agnostic declaration model for the
// application, along with the Loader interface for reading declarations from
// various sources.
//
// The `config.Document` is the single source of truth for the `builder`
// package. Concrete loaders, such as for JSON/YAML documents and for HCL, are
// provided in separate packages.
package config
