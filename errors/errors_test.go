package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeBrokenChain, "breakpoint @@%d", 7)

	if err.Code != ErrCodeBrokenChain {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeBrokenChain)
	}
	if err.Message != "breakpoint @@7" {
		t.Errorf("Message = %v, want %v", err.Message, "breakpoint @@7")
	}
	if got, want := err.Error(), "BROKEN_CHAIN: breakpoint @@7"; got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := Wrap(ErrCodeUnrecognizedLine, cause, "line %d", 3)

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got, want := err.Error(), "UNRECOGNIZED_LINE: line 3: unexpected token"; got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeBrokenChain, "x"), ErrCodeBrokenChain, true},
		{"non-matching code", New(ErrCodeBrokenChain, "x"), ErrCodeInvalidInput, false},
		{"outer code", Wrap(ErrCodeRenderFailed, New(ErrCodeBrokenChain, "inner"), "outer"), ErrCodeRenderFailed, true},
		{"inner code", Wrap(ErrCodeRenderFailed, New(ErrCodeBrokenChain, "inner"), "outer"), ErrCodeBrokenChain, true},
		{"plain error", errors.New("plain"), ErrCodeBrokenChain, false},
		{"nil", nil, ErrCodeBrokenChain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidConfig, errors.New("bad scale"), "style.toml")
	if GetCode(err) != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
	}
	if UserMessage(err) != "style.toml: bad scale" {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), "style.toml: bad scale")
	}

	nested := Wrap(ErrCodeBrokenChain, New(ErrCodeInvalidInput, "inner"), "outer")
	if got := UserMessage(nested); got != "outer: inner" {
		t.Errorf("UserMessage(nested) = %q, want %q", got, "outer: inner")
	}

	plain := errors.New("plain")
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %v, want empty", GetCode(plain))
	}
	if UserMessage(plain) != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", UserMessage(plain), "plain")
	}
}
