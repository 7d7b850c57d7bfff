package iconset

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies the failures surfaced by the export pipeline.
type Kind int

// The failure kinds reported by the package.
const (
	KindUnknown Kind = iota
	// BackendUnavailable means the rasterization backend is missing or misconfigured.
	BackendUnavailable
	// SourceInvalid means the source is missing, unreadable or of an unsupported type.
	SourceInvalid
	// EncodeFailure means a format specific serialization failed.
	EncodeFailure
	// ExternalToolFailure means an OS provided fallback tool exited with an error.
	ExternalToolFailure
	// IOFailure means a directory or file could not be created or written.
	IOFailure
	// InvalidArgument means the export job was rejected before any work started.
	InvalidArgument
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	BackendUnavailable:  "backend unavailable",
	SourceInvalid:       "invalid source",
	EncodeFailure:       "encode failure",
	ExternalToolFailure: "external tool failure",
	IOFailure:           "i/o failure",
	InvalidArgument:     "invalid argument",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel values matching any *Error of the same kind through errors.Is.
var (
	ErrBackendUnavailable  = &Error{Kind: BackendUnavailable}
	ErrSourceInvalid       = &Error{Kind: SourceInvalid}
	ErrEncodeFailure       = &Error{Kind: EncodeFailure}
	ErrExternalToolFailure = &Error{Kind: ExternalToolFailure}
	ErrIOFailure           = &Error{Kind: IOFailure}
	ErrInvalidArgument     = &Error{Kind: InvalidArgument}
)

// Error is the structured error returned by the package.
type Error struct {
	Kind Kind   // failure category
	Op   string // operation that failed, e.g. "rasterize" or "encode ico"
	Path string // file the failure refers to (optional)
	Msg  string // additional diagnostic, e.g. the output of an external tool
	Hint string // remediation guidance for the user (optional)

	Err     error // direct cause
	Context error // earlier failure that led to this one (optional)
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %q", e.Path)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Context != nil {
		fmt.Fprintf(&b, " (after: %v)", e.Context)
	}
	return b.String()
}

// Unwrap exposes both the direct cause and the context error.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Context != nil {
		errs = append(errs, e.Context)
	}
	return errs
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HintOf returns the remediation hint carried by err, if any.
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// backendHint returns the install instructions for the named backend on the running OS.
func backendHint(backend string) string {
	switch backend {
	case "rsvg-convert":
		switch runtime.GOOS {
		case "darwin":
			return "macOS: run 'brew install librsvg'. If you don't have Homebrew, install it from https://brew.sh first."
		case "windows":
			return "Windows: install librsvg through MSYS2 ('pacman -S mingw-w64-x86_64-librsvg') and add its bin directory to PATH."
		default:
			return "Linux: run 'sudo apt-get install librsvg2-bin' or use your distro's package manager."
		}
	}
	return fmt.Sprintf("supported backends are %q and %q", BackendBuiltin, BackendRSVG)
}
