package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidInput, "quantity must be positive, got %d", -2)
	want := "INVALID_INPUT: quantity must be positive, got -2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "saving project %s", "demo")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
	if !Is(err, ErrCodeStore) {
		t.Error("code check should match STORE_ERROR")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("code check matched the wrong code")
	}
	if GetCode(err) != ErrCodeStore {
		t.Errorf("GetCode = %q, want STORE_ERROR", GetCode(err))
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "no such scene")); got != "no such scene" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain")
	if got := UserMessage(plain); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"Simple", "north-house", true},
		{"WithSpaces", "Main Street 12", true},
		{"Empty", "", false},
		{"Traversal", "../etc/passwd", false},
		{"Separator", "a/b", false},
		{"Hidden", ".hidden", false},
		{"Control", "a\x01b", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateProjectName(%q) error = %v, ok = %v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, good := range []string{"png", "STL", "glb"} {
		if err := ValidateFormat(good); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", good, err)
		}
	}
	for _, bad := range []string{"", "obj", "svg"} {
		if err := ValidateFormat(bad); !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) = %v, want INVALID_FORMAT", bad, err)
		}
	}
}
