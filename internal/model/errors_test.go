package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	verr := &ValidationError{Field: "project", Reason: "name cannot be empty"}
	if !strings.Contains(verr.Error(), "project") {
		t.Errorf("ValidationError message = %q", verr.Error())
	}

	perr := &ProtocolError{Op: "status", Detail: "expected exactly one (timestamp), found 2"}
	if !strings.Contains(perr.Error(), "watson status") {
		t.Errorf("ProtocolError message = %q", perr.Error())
	}

	cause := errors.New("exec: not found")
	xerr := &ExecutionError{Op: "start", Err: cause}
	if !errors.Is(xerr, cause) {
		t.Error("ExecutionError does not unwrap to its cause")
	}

	wrapped := fmt.Errorf("starting session: %w", xerr)
	var target *ExecutionError
	if !errors.As(wrapped, &target) {
		t.Error("ExecutionError not found through wrapping")
	}
}
