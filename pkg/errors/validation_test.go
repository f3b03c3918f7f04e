package errors

import (
	"errors"
	"math"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "scenes/marches.toml", false},
		{"valid filename only", "hexmap.toml", false},
		{"valid with dots", "v1.2.3/scene.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"inside", 64, false},
		{"lower bound", 1.0 / 128, false},
		{"upper bound", 512, false},
		{"below", 0, true},
		{"above", 513, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("scale", tt.v, 1.0/128, 512)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRange(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeOutOfRange) {
				t.Errorf("code = %v, want OUT_OF_RANGE", GetCode(err))
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != "scale" {
				t.Errorf("expected ValidationError for scale, got %v", err)
			}
		})
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("style", "unknown style %q", "neon")
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("code = %v", err.Code)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "style" {
		t.Fatalf("missing ValidationError in %v", err)
	}
	if ve.Code() != ErrCodeInvalidInput {
		t.Errorf("ValidationError.Code() = %v", ve.Code())
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidPath,
		ErrCodeOutOfRange,
		ErrCodeParse,
		ErrCodeNotFound,
		ErrCodeSectorNotFound,
		ErrCodeFileNotFound,
		ErrCodeRender,
		ErrCodeCache,
		ErrCodeConfig,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
