// Package preflight checks that the environment can run a notarization poll:
// the notarytool binary resolves, the submission state file is readable, and
// the CI output target is writable. The doctor command renders the results.
package preflight
