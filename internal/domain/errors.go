package domain

import "fmt"

// DiagnosticCode is a stable identifier attached to errors for downstream
// reporting. This layer treats codes as opaque metadata.
type DiagnosticCode string

const (
	CodeInvalidSpec     DiagnosticCode = "OR1001"
	CodeInvalidName     DiagnosticCode = "OR1002"
	CodeFetchFailed     DiagnosticCode = "OR1004"
	CodeParsePackument  DiagnosticCode = "OR1006"
	CodeVersionNotFound DiagnosticCode = "OR1008"
	CodeUnsupportedSpec DiagnosticCode = "OR1010"
	CodeInvalidManifest DiagnosticCode = "OR1012"
)

// UnsupportedSpecError reports a fetcher invoked with a spec variant it
// cannot handle. Not retryable; the caller dispatched to the wrong backend.
type UnsupportedSpecError struct {
	Spec PackageSpec
}

func (e *UnsupportedSpecError) Error() string {
	return fmt.Sprintf("unsupported package spec: %s (%T)", e.Spec, e.Spec)
}

// InvalidPackageNameError reports a name that cannot be embedded in a
// well-formed registry URL.
type InvalidPackageNameError struct {
	Name string
	Err  error
}

func (e *InvalidPackageNameError) Error() string {
	return fmt.Sprintf("invalid package name: %q", e.Name)
}

func (e *InvalidPackageNameError) Unwrap() error { return e.Err }

// FetchError reports a transport failure or non-success status from the
// registry. Retry policy, if any, belongs to the caller.
type FetchError struct {
	Name   string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to fetch %s from %s: unexpected status %d", e.Name, e.URL, e.Status)
	}
	return fmt.Sprintf("failed to fetch %s from %s: %v", e.Name, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not match the expected
// schema. Data retains the raw body for diagnostics; the same input will
// fail the same way, so this is never retryable.
type ParseError struct {
	Code DiagnosticCode
	Name string
	Data []byte
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] failed to parse metadata for %s: %v", e.Code, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// VersionNotFoundError reports a requested version absent from a
// successfully retrieved packument.
type VersionNotFoundError struct {
	Name    string
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %s of %s not found in packument", e.Version, e.Name)
}
