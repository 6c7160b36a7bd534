package app

import (
	"strings"
	"testing"
)

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode()
		if len(code) != codeLength {
			t.Fatalf("expected %d chars, got %q", codeLength, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestNameSuffixIsThreeDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		suffix := nameSuffix()
		if len(suffix) != 3 {
			t.Fatalf("expected 3 digits, got %q", suffix)
		}
		for _, ch := range suffix {
			if ch < '0' || ch > '9' {
				t.Fatalf("suffix %q contains non-digit %q", suffix, ch)
			}
		}
	}
}
