package currency

import (
	"strings"
	"testing"
)

func TestValid(t *testing.T) {
	for _, code := range PopularCurrencies {
		if !Valid(code) {
			t.Errorf("Valid(%q) = false, want true", code)
		}
	}
	if Valid("ZZZ") {
		t.Error("Valid(ZZZ) = true, want false")
	}
}

func TestSymbolFallback(t *testing.T) {
	if got := Symbol("ZZZ"); got != "ZZZ" {
		t.Errorf("Symbol(ZZZ) = %q, want the code itself", got)
	}
}

func TestFormatKnownCurrency(t *testing.T) {
	got := Format(1.78, "EUR")
	if !strings.Contains(got, "1.78") {
		t.Errorf("Format(1.78, EUR) = %q, want the amount with two decimals", got)
	}
}

func TestFormatFallback(t *testing.T) {
	if got := Format(1.5, "ZZZ"); got != "ZZZ 1.50" {
		t.Errorf("Format(1.5, ZZZ) = %q, want ZZZ 1.50", got)
	}
}
