// Package errors provides structured error types for the fragment adapter.
//
// Errors are categorized by Phase (which lifecycle hook or subsystem raised
// it) and Kind (error category). Matching with errors.Is compares Phase and
// Kind only, so sentinels such as ErrElementNotFound match any concrete
// error of the same category:
//
//	if errors.Is(err, fragerrors.ErrElementNotFound) {
//		// container missing from the host page
//	}
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMount, errors.KindInvalidInput).
//		Path("height").
//		Value(-1).
//		Detail("height must be non-negative").
//		Build()
//
// Faults raised inside the embedded module are wrapped with ModuleFault and
// keep the original error reachable through errors.Unwrap.
package errors
