package screening

import (
	"fmt"
	"strings"
)

// InvalidInputError is returned when a stage receives input it cannot work with.
type InvalidInputError struct {
	Stage   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("invalid input for %s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// EmptyDocumentError is returned when the job description yields no text.
type EmptyDocumentError struct {
	FileName string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text could be extracted from %q", e.FileName)
}

// NoValidCandidatesError is returned when every resume of a run was skipped.
type NoValidCandidatesError struct {
	Skipped []SkippedResume
}

func (e *NoValidCandidatesError) Error() string {
	if len(e.Skipped) == 0 {
		return "no valid candidates: no resumes were provided"
	}

	names := make([]string, 0, len(e.Skipped))
	for _, s := range e.Skipped {
		names = append(names, s.FileName)
	}
	return fmt.Sprintf("no valid candidates: all %d resumes were skipped (%s)", len(e.Skipped), strings.Join(names, ", "))
}
