package ldoc

import "fmt"

// Kind identifies which of the three failure modes an Error reports.
type Kind uint8

const (
	// ParseKind reports malformed textual input: invalid UTF-8, a syntax
	// error in the interchange format, nesting past the configured depth,
	// or a disallowed control character.
	ParseKind Kind = iota
	// SyntaxKind reports a structural violation of the document model
	// during expansion or compaction: a duplicate reserved key, the wrong
	// value shape for a reserved key, a list nested directly inside a
	// list, extra keys alongside @value/@list/@set, or an array where a
	// scalar was required.
	SyntaxKind
	// ProcessKind reports a context-evaluation failure: a cycle among
	// prefix references, or a request for a remote context.
	ProcessKind
)

// String returns a lowercase name for k.
func (k Kind) String() string {
	switch k {
	case ParseKind:
		return "parse"
	case SyntaxKind:
		return "syntax"
	case ProcessKind:
		return "process"
	default:
		return "unknown"
	}
}

// Error reports a failure from Parse, ProcessContext, Expand, or Compact.
// Node carries the offending value for diagnostics on SyntaxKind errors;
// it is nil on ParseKind and ProcessKind errors.
type Error struct {
	Kind    Kind
	Message string
	Node    Node
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ldoc: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("ldoc: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

func newParseError(message string, err error) *Error {
	return &Error{Kind: ParseKind, Message: message, Err: err}
}

func newSyntaxError(message string, node Node) *Error {
	return &Error{Kind: SyntaxKind, Message: message, Node: node}
}

func newProcessError(message string) *Error {
	return &Error{Kind: ProcessKind, Message: message}
}
