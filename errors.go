package modelcache

import (
	"fmt"
)

// DecodeError reports a cache hit whose stored payload could not be decoded.
// It is deliberately not demoted to a miss: silently recomputing could mask
// corruption in the shared store. Options.RecomputeOnDecodeError trades that
// check for availability.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("modelcache: decode cached entry %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidateError reports a failed generation advance. Either the current
// generation could not be loaded, or the bumped value could not be
// persisted; in both cases the namespace keeps serving its old generation.
type InvalidateError struct {
	Namespace string
	LoadErr   error
	StoreErr  error
}

func (e *InvalidateError) Error() string {
	switch {
	case e.LoadErr != nil:
		return fmt.Sprintf("invalidate %q: generation load failed: %v", e.Namespace, e.LoadErr)
	case e.StoreErr != nil:
		return fmt.Sprintf("invalidate %q: generation persist failed: %v", e.Namespace, e.StoreErr)
	default:
		return fmt.Sprintf("invalidate %q: unknown error", e.Namespace)
	}
}

func (e *InvalidateError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.LoadErr != nil {
		errs = append(errs, e.LoadErr)
	}
	if e.StoreErr != nil {
		errs = append(errs, e.StoreErr)
	}
	return errs
}
