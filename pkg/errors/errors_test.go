package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"mksls/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "scan_root_error",
			code:    errors.ErrScanRoot,
			message: "directory not found",
			wantStr: "[SCAN_ROOT] directory not found",
		},
		{
			name:    "parse_line_error",
			code:    errors.ErrParseLine,
			message: "unterminated quote",
			wantStr: "[PARSE_LINE] unterminated quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Error() != tt.wantStr {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantStr)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrExecBackup, "failed to move file")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if stderrors.Unwrap(err) != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := errors.Wrap(nil, errors.ErrInternal, "nothing"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestIsMatchesOnCode(t *testing.T) {
	a := errors.New(errors.ErrExecSymlink, "one message")
	b := errors.New(errors.ErrExecSymlink, "another message")
	c := errors.New(errors.ErrExecRemove, "different code")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(a, c) {
		t.Error("errors with different codes should not match")
	}
}

func TestGetCode(t *testing.T) {
	if got := errors.GetCode(errors.New(errors.ErrScanRoot, "x")); got != errors.ErrScanRoot {
		t.Errorf("GetCode() = %v, want %v", got, errors.ErrScanRoot)
	}
	if got := errors.GetCode(fmt.Errorf("plain")); got != errors.ErrUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, errors.ErrUnknown)
	}

	wrapped := fmt.Errorf("outer: %w", errors.New(errors.ErrParseLine, "inner"))
	if got := errors.GetCode(wrapped); got != errors.ErrParseLine {
		t.Errorf("GetCode(wrapped) = %v, want %v", got, errors.ErrParseLine)
	}
}

func TestIsCode(t *testing.T) {
	err := errors.Newf(errors.ErrConfigParse, "bad toml at line %d", 3)
	if !errors.IsCode(err, errors.ErrConfigParse) {
		t.Error("IsCode should match the carried code")
	}
	if errors.IsCode(err, errors.ErrConfigLoad) {
		t.Error("IsCode should not match a different code")
	}
}
