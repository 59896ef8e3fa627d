package llvmanalysis

import "fmt"

// Sentinel error kinds, inspected with errors.Is. Every exported
// constructor and lookup that can fail wraps one of these: the lookup and
// duplicate-name errors via fmt.Errorf("%w: ...") with the offending name,
// malformed IR via a *MalformedIRError that unwraps to ErrMalformedIR, per
// spec.md §7: "Error kinds (values, not type names)".
var (
	// ErrNoSuchFunction is returned when a requested function is neither
	// declared nor defined in the module; a declaration-only function is
	// not an error.
	ErrNoSuchFunction = fmt.Errorf("no such function")
	// ErrNoSuchModule is returned when a requested module is absent from
	// a cross-module analysis set.
	ErrNoSuchModule = fmt.Errorf("no such module")
	// ErrDuplicateModule is returned when two modules passed to
	// CrossModuleAnalysis share a name.
	ErrDuplicateModule = fmt.Errorf("duplicate module")
	// ErrMalformedIR is returned when a function's terminators or
	// instructions don't match the shapes this library knows how to
	// interpret (e.g. a terminator referencing a successor label that
	// isn't a block in the function).
	ErrMalformedIR = fmt.Errorf("malformed IR")
)

// MalformedIRError carries the specific description behind ErrMalformedIR
// so callers that want the raw detail (rather than parsing the wrapped
// message) can recover it with errors.As.
type MalformedIRError struct {
	Function    string
	Description string
}

func (e *MalformedIRError) Error() string {
	return fmt.Sprintf("malformed IR in function %s: %s", e.Function, e.Description)
}

func (e *MalformedIRError) Unwrap() error { return ErrMalformedIR }

func malformedIR(fn, description string) error {
	return &MalformedIRError{Function: fn, Description: description}
}

func noSuchFunction(name string) error {
	return fmt.Errorf("%w: %q", ErrNoSuchFunction, name)
}

func noSuchModule(name string) error {
	return fmt.Errorf("%w: %q", ErrNoSuchModule, name)
}

func duplicateModule(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateModule, name)
}
