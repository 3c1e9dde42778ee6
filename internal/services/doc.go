// Package services defines shared utilities consumed by the status checker
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run and submission identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     external tool failures, timeouts, and validation problems apart.
//
// Tool wrappers live in subpackages (see notarytool) and tag their failures
// with the markers defined here.
package services
