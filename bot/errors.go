package bot

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal run error. Soft failures are not errors; see Outcome.
type Kind uint8

const (
	// KindUnknown is for unclassified errors
	KindUnknown Kind = iota

	// KindConfig is for missing or invalid configuration
	KindConfig

	// KindFetch is for failures listing or fetching posts
	KindFetch

	// KindGenerate is for language model failures
	KindGenerate

	// KindState is for reply ledger failures
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFetch:
		return "fetch"
	case KindGenerate:
		return "generate"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a fatal failure that aborts the run.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fail wraps err with a kind and operation label. A nil err stays nil.
func Fail(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from any error, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
