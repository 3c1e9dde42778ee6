package notarytool

import (
	"bufio"
	"strings"
)

// Status classifies a notarytool info response.
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusUnknown    Status = "unknown"
)

const (
	markerAccepted   = "status: Accepted"
	markerInProgress = "status: In Progress"
	markerProcessing = "status: Processing"
)

// Classify maps raw notarytool output to a Status by literal substring.
// Accepted takes precedence over the in-progress markers; anything else,
// including Invalid and Rejected, is StatusUnknown.
func Classify(output string) Status {
	switch {
	case strings.Contains(output, markerAccepted):
		return StatusAccepted
	case strings.Contains(output, markerInProgress), strings.Contains(output, markerProcessing):
		return StatusInProgress
	default:
		return StatusUnknown
	}
}

// Submission holds the fields notarytool prints for a submission.
type Submission struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
}

// ParseSubmission extracts `key: value` lines from notarytool output. Unknown
// keys and unstructured lines are ignored; the first occurrence of a key wins.
func ParseSubmission(output string) Submission {
	var sub Submission
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "id":
			setOnce(&sub.ID, value)
		case "name":
			setOnce(&sub.Name, value)
		case "status":
			setOnce(&sub.Status, value)
		case "createdDate":
			setOnce(&sub.CreatedDate, value)
		}
	}
	return sub
}

func setOnce(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
