// Package logging provides a simple leveled logging interface for the
// media-catalog services.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions (e.g. a storage tier failed and was skipped)
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable, or
// forced to debug with DEBUG=true. SetLevel overrides it at runtime.
package logging
