// Package checker runs a single notarization status poll.
//
// The sequence is strictly linear: verify credentials, read the submission
// state file, invoke notarytool once, classify its output, and, on
// acceptance, publish accepted=true to the CI output file. The returned
// Result and error map directly onto the process exit code: a nil error means
// success (accepted, still processing, or nothing to check).
package checker
