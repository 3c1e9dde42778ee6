// Package notarytool mediates access to Apple's notarytool CLI (normally run
// through xcrun) used to poll notarization submissions.
//
// It builds the fixed `notarytool info` invocation, collects the combined
// stdout/stderr stream, classifies the result by the literal status lines the
// tool prints, and exposes an Executor seam so callers can be tested without
// macOS or network access.
//
// Prefer this package over ad-hoc exec.Command usage so credential redaction
// and timeout handling stay consistent.
package notarytool
