package utils

import (
	"fmt"
	"strings"
)

const (
	indent = "  "
	bullet = "- "
)

// MultiError accumulates errors from a sequence of steps.
// It formats them as a bullet list, sub-errors are indented.
type MultiError struct {
	errs []error
}

func NewMultiError() *MultiError {
	return &MultiError{}
}

func (e *MultiError) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		// Flatten nested multi errors
		if v, ok := err.(*MultiError); ok { // nolint: errorlint
			e.errs = append(e.errs, v.errs...)
		} else {
			e.errs = append(e.errs, err)
		}
	}
}

func (e *MultiError) AppendWithPrefix(prefix string, err error) {
	if err != nil {
		e.errs = append(e.errs, PrefixError(prefix, err))
	}
}

func (e *MultiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.AppendWithPrefix(fmt.Sprintf(format, a...), err)
}

func (e *MultiError) Len() int {
	return len(e.errs)
}

func (e *MultiError) WrappedErrors() []error {
	return e.errs
}

// ErrorOrNil returns nil if no error has been appended.
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *MultiError) Unwrap() []error {
	return e.errs
}

func (e *MultiError) Error() string {
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	lines := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		lines = append(lines, bullet+indentLines(err.Error()))
	}
	return strings.Join(lines, "\n")
}

type prefixedError struct {
	prefix string
	err    error
}

// PrefixError wraps an error with a prefix message,
// the original error is formatted as an indented bullet list.
func PrefixError(prefix string, err error) error {
	return &prefixedError{prefix: prefix, err: err}
}

func PrefixErrorf(err error, format string, a ...any) error {
	return PrefixError(fmt.Sprintf(format, a...), err)
}

func (e *prefixedError) Unwrap() error {
	return e.err
}

func (e *prefixedError) Error() string {
	prefix := strings.TrimRight(e.prefix, ".,:") + ":"
	var lines []string
	if v, ok := e.err.(*MultiError); ok && v.Len() > 1 { // nolint: errorlint
		for _, err := range v.WrappedErrors() {
			lines = append(lines, bullet+indentLines(err.Error()))
		}
	} else {
		lines = append(lines, bullet+indentLines(e.err.Error()))
	}
	block := strings.Join(lines, "\n")
	return prefix + "\n" + indent + strings.ReplaceAll(block, "\n", "\n"+indent)
}

func indentLines(str string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		if i > 0 {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
