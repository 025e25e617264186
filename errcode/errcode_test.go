package errcode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStrerror(t *testing.T) {
	cases := map[int]string{
		0:    "Success",
		1:    "Invalid VE name",
		2:    "Invalid VE type",
		3:    "Conflicting VE config parameters",
		4:    "VE name already in use",
		5:    "VE not registered",
		6:    "VE already active",
		7:    "VE operation failed",
		8:    "Unable to meet VE requirements",
		9:    "VE not active",
		10:   "Too many requests, try again later",
		11:   "Unknown error",
		-1:   "Unknown error",
		999:  "Unknown error",
		1000: "Failed to allocate memory",
		1001: "Failed to connect to VCMMD service",
		1002: "Unknown error",
	}
	for code, want := range cases {
		if got := Strerror(code); got != want {
			t.Fatalf("Strerror(%d) = %q, want %q", code, got, want)
		}
	}
	if got := Strerror(1 << 40); got != "Unknown error" {
		t.Fatalf("Strerror(1<<40) = %q", got)
	}
}

func TestCodesAreStable(t *testing.T) {
	if InvalidVEName != 1 || TooManyRequests != 10 {
		t.Fatalf("service range moved: %d..%d", InvalidVEName, TooManyRequests)
	}
	if NoMemory != 1000 || ConnectionFailed != 1001 {
		t.Fatalf("library range moved: %d..%d", NoMemory, ConnectionFailed)
	}
}

func TestFromStatus(t *testing.T) {
	if err := FromStatus(0); err != nil {
		t.Fatalf("FromStatus(0) = %v", err)
	}
	err := FromStatus(int32(VENotActive))
	if !errors.Is(err, ErrVENotActive) {
		t.Fatalf("FromStatus(9) = %v, not ErrVENotActive", err)
	}
	if errors.Is(err, ErrVENotRegistered) {
		t.Fatal("code 9 matched ErrVENotRegistered")
	}
	if CodeOf(FromStatus(42)) != 42 {
		t.Fatal("unknown status not passed through")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := fmt.Errorf("get policy: %w", Wrap(NoMemory, io.ErrShortBuffer))
	if !errors.Is(err, ErrNoMemory) || !errors.Is(err, io.ErrShortBuffer) {
		t.Fatalf("wrapped error lost identity: %v", err)
	}
	if CodeOf(err) != NoMemory {
		t.Fatalf("CodeOf = %d", CodeOf(err))
	}
	if got, want := Wrap(ConnectionFailed, context.Canceled).Error(),
		"Failed to connect to VCMMD service: context canceled"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != Success {
		t.Fatal("CodeOf(nil) != Success")
	}
	if CodeOf(errors.New("boom")) != ConnectionFailed {
		t.Fatal("plain error must map to ConnectionFailed")
	}
}

func TestClass(t *testing.T) {
	cases := map[Code]Class{
		Success:          ClassNone,
		InvalidVEConfig:  ClassValidation,
		VENotRegistered:  ClassState,
		VEAlreadyActive:  ClassState,
		NoSpace:          ClassResource,
		TooManyRequests:  ClassResource,
		ConnectionFailed: ClassTransport,
		NoMemory:         ClassLocal,
		Code(77):         ClassUnknown,
	}
	for c, want := range cases {
		if got := c.Class(); got != want {
			t.Fatalf("%d.Class() = %s, want %s", c, got, want)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrConnectionFailed, true},
		{Wrap(ConnectionFailed, io.EOF), true},
		{ErrTooManyRequests, true},
		{ErrVENotRegistered, false},
		{ErrInvalidVEConfig, false},
		{errors.New("dial"), true},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
