package preflight

import (
	"notarycheck/internal/config"
	"notarycheck/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional checks do not fail the doctor command.
	Optional bool
	Detail   string
}

// RunAll executes every preflight check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, fromDependency(status))
	}
	results = append(results, CheckCredentials(cfg))
	results = append(results, CheckReadable("Submission state file", cfg.Paths.StateFile))
	if cfg.Paths.GitHubOutput != "" {
		results = append(results, CheckWritableTarget("CI output", cfg.Paths.GitHubOutput))
	} else {
		results = append(results, Result{Name: "CI output", Passed: true, Optional: true, Detail: "not configured (GITHUB_OUTPUT unset)"})
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

func fromDependency(status deps.Status) Result {
	detail := status.Detail
	if status.Available {
		detail = status.Command
		if status.Description != "" {
			detail += " (" + status.Description + ")"
		}
	}
	return Result{
		Name:     status.Name,
		Passed:   status.Available,
		Optional: status.Optional,
		Detail:   detail,
	}
}
