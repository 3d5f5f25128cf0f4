package site

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the pipeline. Per-document failures are collected
// into a BuildReport instead of aborting the build, so one run reports every
// content problem at once.
var (
	ErrMalformedDocument         = errors.New("malformed document")
	ErrMissingField              = errors.New("missing required field")
	ErrInvalidDate               = errors.New("invalid date")
	ErrDuplicateIdentifier       = errors.New("duplicate identifier")
	ErrDanglingReference         = errors.New("dangling reference")
	ErrUnsupportedReferenceDepth = errors.New("unsupported reference depth")

	// ErrUnknownField marks warning-severity findings about front matter
	// keys outside the recognized set. The document itself is still valid.
	ErrUnknownField = errors.New("unknown front matter field")

	// ErrNotFound is returned by collection and store queries only.
	ErrNotFound = errors.New("document not found")
)

// Severity classifies a reported issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding attributed to a source file or slug.
type Issue struct {
	Path     string // source path or slug of the offending document
	Kind     error  // one of the Err* sentinels
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", i.Severity, i.Path, i.Kind, i.Message)
}

// errIssue builds an error-severity issue.
func errIssue(path string, kind error, format string, args ...any) Issue {
	return Issue{Path: path, Kind: kind, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

// warnIssue builds a warning-severity issue.
func warnIssue(path string, kind error, format string, args ...any) Issue {
	return Issue{Path: path, Kind: kind, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// BuildReport aggregates every issue found during a build. It is emitted
// once per run; the pipeline never halts at the first problem.
type BuildReport struct {
	Issues []Issue
}

// Add appends issues to the report.
func (r *BuildReport) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// HasErrors reports whether any issue has error severity. Warnings alone
// never fail a build.
func (r *BuildReport) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity issues.
func (r *BuildReport) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

func (r *BuildReport) String() string {
	if len(r.Issues) == 0 {
		return "no issues"
	}
	var b strings.Builder
	for _, i := range r.Issues {
		b.WriteString(i.String())
		b.WriteByte('\n')
	}
	return b.String()
}
