package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeDataIntegrity, "duplicate station id %d", 12)
	want := "DATA_INTEGRITY: duplicate station id 12"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open stations.csv")

	if got := err.Error(); got != "FILE_NOT_FOUND: open stations.csv: no such file" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeEmptyGraph, "no vertices"), ErrCodeEmptyGraph, true},
		{"DifferentCode", New(ErrCodeEmptyGraph, "no vertices"), ErrCodeDataIntegrity, false},
		{"PlainError", fmt.Errorf("plain"), ErrCodeInternal, false},
		{"WrappedInFmt", fmt.Errorf("context: %w", New(ErrCodeDataIntegrity, "bad")), ErrCodeDataIntegrity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidFormat, "bad format")); got != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidFormat)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeDataIntegrity, "route 5 references unknown station 99")
	if got := UserMessage(err); got != "route 5 references unknown station 99" {
		t.Errorf("UserMessage() = %q", got)
	}
	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
