package llvmanalysis

import (
	"errors"
	"testing"
)

func TestMalformedIRErrorWrapsSentinel(t *testing.T) {
	err := malformedIR("f", "block %x has unrecognized terminator")
	if !errors.Is(err, ErrMalformedIR) {
		t.Fatalf("malformedIR result should unwrap to ErrMalformedIR")
	}
	var mie *MalformedIRError
	if !errors.As(err, &mie) {
		t.Fatalf("malformedIR result should be a *MalformedIRError")
	}
	if mie.Function != "f" {
		t.Fatalf("Function = %q, want %q", mie.Function, "f")
	}
}

func TestNoSuchFunctionWrapsSentinel(t *testing.T) {
	if err := noSuchFunction("missing"); !errors.Is(err, ErrNoSuchFunction) {
		t.Fatalf("noSuchFunction result should unwrap to ErrNoSuchFunction: %v", err)
	}
}

func TestNoSuchModuleWrapsSentinel(t *testing.T) {
	if err := noSuchModule("missing.ll"); !errors.Is(err, ErrNoSuchModule) {
		t.Fatalf("noSuchModule result should unwrap to ErrNoSuchModule: %v", err)
	}
}

func TestDuplicateModuleWrapsSentinel(t *testing.T) {
	if err := duplicateModule("dup.ll"); !errors.Is(err, ErrDuplicateModule) {
		t.Fatalf("duplicateModule result should unwrap to ErrDuplicateModule: %v", err)
	}
}
